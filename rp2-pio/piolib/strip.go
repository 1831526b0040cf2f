package piolib

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
)

// RGBWWriter writes one frame of colors. WS2812 and LatchedWS2812 implement it.
type RGBWWriter interface {
	WriteRGBW(buf []RGBW)
}

var (
	_ RGBWWriter        = (*WS2812)(nil)
	_ RGBWWriter        = (*LatchedWS2812)(nil)
	_ drivers.Displayer = (*Strip)(nil)
)

// Strip is a frame buffer for a one dimensional LED chain so it can be used
// wherever a drivers.Displayer is accepted. Pixel x maps to LED x.
type Strip struct {
	dev    RGBWWriter
	pixels []RGBW
}

// NewStrip returns a strip of n LEDs, all off.
func NewStrip(dev RGBWWriter, n int) *Strip {
	if n < 0 || n > math.MaxInt16 {
		panic("piolib:bad strip length")
	}
	return &Strip{dev: dev, pixels: make([]RGBW, n)}
}

// Size implements drivers.Displayer. The height is always 1.
func (s *Strip) Size() (x, y int16) {
	return int16(len(s.pixels)), 1
}

// SetPixel implements drivers.Displayer. Pixels outside the strip are ignored.
// Pixels inside it have their white channel cleared.
func (s *Strip) SetPixel(x, y int16, c color.RGBA) {
	if y != 0 || x < 0 || int(x) >= len(s.pixels) {
		return
	}
	s.pixels[x] = RGBW{R: c.R, G: c.G, B: c.B}
}

// SetRGBW sets LED i including its white channel.
func (s *Strip) SetRGBW(i int, c RGBW) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

// Fill sets every LED to c.
func (s *Strip) Fill(c RGBW) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// Pixels returns the frame buffer. Changes are shown on the next Display.
func (s *Strip) Pixels() []RGBW { return s.pixels }

// Display implements drivers.Displayer by writing the whole buffer.
func (s *Strip) Display() error {
	s.dev.WriteRGBW(s.pixels)
	return nil
}
