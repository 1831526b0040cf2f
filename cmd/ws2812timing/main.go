// Command ws2812timing prints the PIO clock divisor and the resulting
// WS2812 waveform for one or more boards, so a system clock can be checked
// before flashing firmware.
//
//	ws2812timing -sysclk 133MHz -format grbw -pixels 144
//	ws2812timing -config boards.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"

	"github.com/tinygo-org/ws2812pio/internal/profile"
	"github.com/tinygo-org/ws2812pio/rp2-pio/piolib"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ws2812timing", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "path to a YAML file of board profiles")
		format     = fs.String("format", "grb", "LED color format: rgb, grb, rgbw or grbw")
		latch      = fs.Duration("latch", piolib.LatchDelay, "reset time between frames")
		pixels     = fs.Int("pixels", 60, "LEDs per frame, for frame time")
		program    = fs.Bool("program", false, "print the PIO program words")
		debug      = fs.Bool("debug", false, "debug logging")
	)
	sysclk := 125 * physic.MegaHertz
	fs.Var(&sysclk, "sysclk", "system clock frequency, e.g. 133MHz")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if *program {
		printProgram(stdout)
	}

	profiles := []profile.Profile{{
		Name:      "flags",
		Frequency: sysclk,
		Format:    *format,
		Latch:     latch.String(),
		Pixels:    *pixels,
	}}
	if *configPath != "" {
		cfg, err := profile.Load(*configPath)
		if err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("config load failed")
			return 1
		}
		log.Debug().Str("path", *configPath).Int("profiles", len(cfg.Profiles)).Msg("config loaded")
		profiles = cfg.Profiles
	}

	status := 0
	for i := range profiles {
		p := &profiles[i]
		if p.Pixels == 0 {
			p.Pixels = *pixels
		}
		if err := report(log, p); err != nil {
			log.Error().Err(err).Str("profile", p.Name).Msg("invalid profile")
			status = 1
		}
	}
	return status
}

// report logs the timing of one profile.
func report(log zerolog.Logger, p *profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	// Validate has checked every field.
	sysclk, _ := p.Clock()
	format, _ := p.ColorFormat()
	latch, _ := p.LatchDelay()

	t, err := piolib.WS2812Timing(sysclk)
	if err != nil {
		return fmt.Errorf("system clock %s: %w", sysclk, err)
	}
	frame := t.FrameTime(p.Pixels, format)
	log.Debug().Str("profile", p.Name).Uint16("pull_threshold", format.PullThreshold()).
		Uint32("divisor256", t.ClkDiv.Divisor256()).Msg("state machine")
	log.Info().
		Str("profile", p.Name).
		Stringer("sysclk", sysclk).
		Stringer("format", format).
		Stringer("clkdiv", t.ClkDiv).
		Stringer("t0h", t.T0H).
		Stringer("t1h", t.T1H).
		Stringer("bit", t.Bit).
		Stringer("rate", t.BitRate).
		Int("pixels", p.Pixels).
		Stringer("frame", frame).
		Stringer("latch", latch).
		Float64("max_fps", float64(time.Second)/float64(frame+latch)).
		Msg("timing")
	return nil
}

func printProgram(w io.Writer) {
	fmt.Fprintln(w, "; ws2812, side-set 1, wrap 0..3")
	for i, instr := range piolib.WS2812Program() {
		fmt.Fprintf(w, "%2d: %#04x\n", i, instr)
	}
}
