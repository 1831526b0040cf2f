package piolib

import (
	"image/color"
	"testing"
)

func TestParseColorFormat(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    ColorFormat
		wantErr bool
	}{
		{in: "rgb", want: FormatRGB},
		{in: "GRB", want: FormatRGB},
		{in: " rgbw ", want: FormatRGBW},
		{in: "grbw", want: FormatRGBW},
		{in: "rgbww", wantErr: true},
		{in: "", wantErr: true},
	} {
		got, err := ParseColorFormat(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseColorFormat(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestColorFormat(t *testing.T) {
	if FormatRGB.PullThreshold() != 24 || FormatRGBW.PullThreshold() != 32 {
		t.Error("wrong pull thresholds")
	}
	for f, want := range map[ColorFormat]string{FormatRGB: "rgb", FormatRGBW: "rgbw", 7: "ColorFormat(7)"} {
		if got := f.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
	// Unknown formats fall back to 3 bytes per LED.
	if got := ColorFormat(7).packer()(RGBW{R: 1, W: 9}); got != 0x00010000 {
		t.Errorf("unknown format packed %#x", got)
	}
}

func TestToRGBW(t *testing.T) {
	for _, tc := range []struct {
		in   color.Color
		want RGBW
	}{
		{in: RGBW{R: 1, G: 2, B: 3, W: 4}, want: RGBW{R: 1, G: 2, B: 3, W: 4}},
		{in: color.RGBA{R: 10, G: 20, B: 30, A: 40}, want: RGBW{R: 10, G: 20, B: 30}},
		{in: color.NRGBA{R: 255, G: 0, B: 128, A: 255}, want: RGBW{R: 255, B: 128}},
		{in: color.Gray16{Y: 0xabcd}, want: RGBW{R: 0xab, G: 0xab, B: 0xab}},
	} {
		if got := toRGBW(tc.in); got != tc.want {
			t.Errorf("toRGBW(%v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestRGBWColor(t *testing.T) {
	r, g, b, a := RGBW{R: 0xff, G: 0x80, B: 0, W: 0xff}.RGBA()
	if r != 0xffff || g != 0x8080 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
	got := color.RGBAModel.Convert(RGBW{R: 1, G: 2, B: 3})
	if got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("RGBAModel.Convert = %v", got)
	}
}
