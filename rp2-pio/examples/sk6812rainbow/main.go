//go:build rp2040 || rp2350

package main

import (
	"machine"
	"math"
	"strconv"
	"time"

	pio "github.com/tinygo-org/ws2812pio/rp2-pio"
	"github.com/tinygo-org/ws2812pio/rp2-pio/piolib"
)

var (
	ledPin    string
	numLEDs   = "8"
	ledFormat = "rgbw"
)

/*
sk6812rainbow scrolls a rainbow along a strip of SK6812 LEDs. The white
channel slowly breathes so RGBW strips show all four channels in use.

Pin, strip length and color format are set at link time:

	tinygo flash -target=pico -ldflags "-X main.ledPin=16 -X main.numLEDs=30 -X main.ledFormat=grb" ./rp2-pio/examples/sk6812rainbow/
*/
func main() {
	pinNum, err := strconv.Atoi(ledPin)
	if err != nil {
		println("Invalid pin number: " + ledPin)
		pinNum = 16
	}
	n, err := strconv.Atoi(numLEDs)
	if err != nil || n <= 0 {
		println("Invalid LED count: " + numLEDs)
		n = 8
	}
	format, err := piolib.ParseColorFormat(ledFormat)
	if err != nil {
		println("Invalid color format: " + ledFormat)
		format = piolib.FormatRGBW
	}

	sm, _ := pio.PIO0.ClaimStateMachine()
	dev, err := piolib.NewWS2812(sm, machine.Pin(pinNum), format)
	if err != nil {
		panic(err.Error())
	}
	strip := piolib.NewStrip(piolib.NewLatchedWS2812(dev, nil), n)

	stepMax := 64
	for i := 0; ; i++ {
		white := uint8(16 * (math.Sin(float64(i)*0.05)*0.5 + 0.5))
		for led := range strip.Pixels() {
			c := getRainbow((i+2*led)%stepMax, 0.3, 64)
			c.W = white
			strip.SetRGBW(led, c)
		}
		strip.Display()
		time.Sleep(50 * time.Millisecond)
	}
}

func getRainbow(step int, frequency, maxValue float64) piolib.RGBW {
	// Frequency controls how fast the colors change.
	// A smaller value creates a longer, slower cycle.
	baseStep := float64(step) * frequency
	stepTwo := baseStep + math.Pi*2/3
	stepThree := baseStep + math.Pi*4/3

	// Sine waves offset by 120 degrees per channel give a smooth walk
	// through the color spectrum, scaled from 0..1 to 0..maxValue.
	red := math.Sin(baseStep)*0.5 + 0.5
	green := math.Sin(stepTwo)*0.5 + 0.5
	blue := math.Sin(stepThree)*0.5 + 0.5
	return piolib.RGBW{
		R: uint8(red * maxValue),
		G: uint8(green * maxValue),
		B: uint8(blue * maxValue),
	}
}
