package piolib

import (
	"time"

	pio "github.com/tinygo-org/ws2812pio/rp2-pio"
	"periph.io/x/conn/v3/physic"
)

// Timing describes the waveform the WS2812 program produces at a given
// system clock.
type Timing struct {
	ClkDiv pio.ClkDiv
	// T0H and T1H are the high times of a 0 and a 1 bit.
	T0H, T1H time.Duration
	// Bit is the length of one bit cell.
	Bit     time.Duration
	BitRate physic.Frequency
}

// WS2812Timing computes the divisor and resulting waveform for sysclk.
func WS2812Timing(sysclk physic.Frequency) (Timing, error) {
	div, err := ws2812ClkDiv(sysclk)
	if err != nil {
		return Timing{}, err
	}
	hz := uint64(sysclk / physic.Hertz)
	d256 := uint64(div.Divisor256())
	cycles := func(n uint64) time.Duration {
		return time.Duration(n * uint64(time.Second) * d256 / (256 * hz))
	}
	return Timing{
		ClkDiv:  div,
		T0H:     cycles(ws2812T1),
		T1H:     cycles(ws2812T1 + ws2812T2),
		Bit:     cycles(ws2812CyclesPerBit),
		BitRate: sysclk * 256 / physic.Frequency(d256*ws2812CyclesPerBit),
	}, nil
}

// FrameTime returns how long n LEDs take to shift out, excluding the latch delay.
func (t Timing) FrameTime(n int, format ColorFormat) time.Duration {
	return time.Duration(n) * time.Duration(format.PullThreshold()) * t.Bit
}
