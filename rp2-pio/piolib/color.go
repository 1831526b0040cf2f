package piolib

import (
	"errors"
	"image/color"
	"strconv"
	"strings"
)

var errUnknownColorFormat = errors.New("piolib:unknown color format")

// ColorFormat selects the number of bytes sent per LED.
type ColorFormat uint8

const (
	// FormatRGB sends 3 bytes per LED in G, R, B order (WS2812, WS2812B, SK6812 RGB).
	FormatRGB ColorFormat = iota
	// FormatRGBW sends 4 bytes per LED in G, R, B, W order (SK6812 RGBW).
	FormatRGBW
)

// ParseColorFormat parses the names used in board configuration:
// "rgb" or "grb" for 3 bytes per LED and "rgbw" or "grbw" for 4.
func ParseColorFormat(s string) (ColorFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb", "grb":
		return FormatRGB, nil
	case "rgbw", "grbw":
		return FormatRGBW, nil
	}
	return 0, errUnknownColorFormat
}

func (f ColorFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatRGBW:
		return "rgbw"
	}
	return "ColorFormat(" + strconv.Itoa(int(f)) + ")"
}

// PullThreshold returns the number of bits shifted out per LED, which is
// the autopull threshold of the state machine.
func (f ColorFormat) PullThreshold() uint16 {
	if f == FormatRGBW {
		return 32
	}
	return 24
}

// packer returns the function that maps a color to a left-justified FIFO word.
func (f ColorFormat) packer() func(RGBW) uint32 {
	switch f {
	case FormatRGBW:
		return packGRBW
	default:
		return packGRB
	}
}

// packGRB leaves the low byte clear; the 24 bit pull threshold never shifts it out.
func packGRB(c RGBW) uint32 {
	return uint32(c.G)<<24 | uint32(c.R)<<16 | uint32(c.B)<<8
}

func packGRBW(c RGBW) uint32 {
	return uint32(c.G)<<24 | uint32(c.R)<<16 | uint32(c.B)<<8 | uint32(c.W)
}

// RGBW is an 8 bit per channel color with a separate white channel, as used
// by SK6812 RGBW LEDs. It is a [color.Color] that ignores W and is always opaque.
type RGBW struct {
	R, G, B, W uint8
}

// RGBA implements [color.Color].
func (c RGBW) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// toRGBW converts c to the channels sent to the LED. color.RGBA and RGBW
// convert field by field; other colors keep the top 8 bits of each channel.
func toRGBW(c color.Color) RGBW {
	switch c := c.(type) {
	case RGBW:
		return c
	case color.RGBA:
		return RGBW{R: c.R, G: c.G, B: c.B}
	}
	r16, g16, b16, _ := c.RGBA()
	return RGBW{R: uint8(r16 >> 8), G: uint8(g16 >> 8), B: uint8(b16 >> 8)}
}
