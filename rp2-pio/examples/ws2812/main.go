//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"
	"time"

	pio "github.com/tinygo-org/ws2812pio/rp2-pio"
	"github.com/tinygo-org/ws2812pio/rp2-pio/piolib"
)

// Stoplight sequence on a single WS2812 LED.
func main() {
	const ws2812Pin = machine.GP16
	sm, _ := pio.PIO0.ClaimStateMachine()
	dev, err := piolib.NewWS2812(sm, ws2812Pin, piolib.FormatRGB)
	if err != nil {
		panic(err.Error())
	}
	ws := piolib.NewLatchedWS2812(dev, nil)

	const maxVal = 4
	red := []color.RGBA{{R: maxVal}}
	amber := []color.RGBA{{R: maxVal, G: maxVal / 4 * 3}}
	green := []color.RGBA{{G: maxVal}}
	for {
		const longWait = 6 * time.Second
		const shortWait = 2 * time.Second
		// Start Stoplight in red (STOP).
		println("red")
		ws.WriteColors(red)
		time.Sleep(4 * time.Second)

		// Before green we go through a red+yellow stage (PREP. PULL AWAY)
		println("green/amber switching")
		for i := 0; i < 2; i++ {
			const semiSleep = time.Second / 2
			ws.WriteColors(amber)
			time.Sleep(semiSleep)
			ws.WriteColors(red)
			time.Sleep(semiSleep)
		}
		println("green")
		ws.WriteColors(green)
		time.Sleep(longWait)

		println("amber")
		ws.WriteColors(amber)
		time.Sleep(shortWait)
	}
}
