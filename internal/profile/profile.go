// Package profile loads named board profiles for the timing tool.
//
// A profile file is YAML:
//
//	profiles:
//	  - name: pico
//	    system_clock: 125MHz
//	    format: grb
//	  - name: sk6812-strip
//	    system_clock: 200MHz
//	    format: grbw
//	    latch: 80us
//	    pixels: 144
package profile

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tinygo-org/ws2812pio/rp2-pio/piolib"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

var (
	ErrNoName  = errors.New("profile: missing name")
	ErrNoClock = errors.New("profile: missing system_clock")
)

type Config struct {
	Profiles []Profile `yaml:"profiles"`
}

// Profile describes one board: its system clock and the LEDs wired to it.
// Empty fields take defaults: 3 byte GRB LEDs and the minimum latch delay.
type Profile struct {
	Name        string `yaml:"name"`
	SystemClock string `yaml:"system_clock"` // e.g. 125MHz
	Format      string `yaml:"format,omitempty"`
	Latch       string `yaml:"latch,omitempty"` // e.g. 60us
	Pixels      int    `yaml:"pixels,omitempty"`

	// Frequency, when set, is the exact system clock and takes precedence
	// over SystemClock. Profiles built from flags use it.
	Frequency physic.Frequency `yaml:"-"`
}

// Load reads the profiles in path. Individual profiles are not validated.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("profile: %s: %w", path, err)
	}
	return &c, nil
}

// Save writes c to path as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Clock parses the system clock frequency.
func (p *Profile) Clock() (physic.Frequency, error) {
	if p.Frequency != 0 {
		return p.Frequency, nil
	}
	if p.SystemClock == "" {
		return 0, ErrNoClock
	}
	var f physic.Frequency
	if err := f.Set(p.SystemClock); err != nil {
		return 0, fmt.Errorf("profile: system_clock %q: %w", p.SystemClock, err)
	}
	return f, nil
}

// ColorFormat parses the LED color format, defaulting to piolib.FormatRGB.
func (p *Profile) ColorFormat() (piolib.ColorFormat, error) {
	if p.Format == "" {
		return piolib.FormatRGB, nil
	}
	f, err := piolib.ParseColorFormat(p.Format)
	if err != nil {
		return 0, fmt.Errorf("profile: format %q: %w", p.Format, err)
	}
	return f, nil
}

// LatchDelay parses the reset time between frames, defaulting to
// piolib.LatchDelay. Shorter delays are rejected.
func (p *Profile) LatchDelay() (time.Duration, error) {
	if p.Latch == "" {
		return piolib.LatchDelay, nil
	}
	d, err := time.ParseDuration(p.Latch)
	if err != nil {
		return 0, fmt.Errorf("profile: latch: %w", err)
	}
	if d < piolib.LatchDelay {
		return 0, fmt.Errorf("profile: latch %s below minimum %s", d, piolib.LatchDelay)
	}
	return d, nil
}

// Validate checks that every field of p parses.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrNoName
	}
	if p.Pixels < 0 {
		return fmt.Errorf("profile: negative pixel count %d", p.Pixels)
	}
	if _, err := p.Clock(); err != nil {
		return err
	}
	if _, err := p.ColorFormat(); err != nil {
		return err
	}
	_, err := p.LatchDelay()
	return err
}
