//go:build rp2040 || rp2350

package piolib

import (
	"machine"

	pio "github.com/tinygo-org/ws2812pio/rp2-pio"
	"periph.io/x/conn/v3/physic"
)

// NewWS2812 loads the WS2812 program into the PIO block of sm and starts sm
// driving pin, with the divisor derived from the current CPU frequency.
func NewWS2812(sm pio.StateMachine, pin machine.Pin, format ColorFormat) (*WS2812, error) {
	sysclk := physic.Frequency(machine.CPUFrequency()) * physic.Hertz
	return NewWS2812Clock(sm, pin, format, sysclk)
}

// NewWS2812Clock is like NewWS2812 for a known system clock frequency.
// sm is claimed if it was not already. It fails, dropping a claim it made,
// if sm is already running, if the program does not fit in
// instruction memory or if sysclk is out of divisor range.
func NewWS2812Clock(sm pio.StateMachine, pin machine.Pin, format ColorFormat, sysclk physic.Frequency) (*WS2812, error) {
	release, err := claimIdle(sm)
	if err != nil {
		return nil, err
	}
	// Divisor first so a bad clock does not leak instruction memory.
	div, err := ws2812ClkDiv(sysclk)
	if err != nil {
		release()
		return nil, err
	}
	Pio := sm.PIO()
	offset, err := Pio.AddProgram(ws2812Instructions, ws2812Origin)
	if err != nil {
		release()
		return nil, err
	}
	pin.Configure(machine.PinConfig{Mode: Pio.PinMode()})

	cfg := ws2812ProgramDefaultConfig(offset)
	cfg.SetSidesetPins(pin)
	cfg.SetOutShift(false, true, format.PullThreshold())
	// We only use Tx FIFO, so we set the join to Tx.
	cfg.SetFIFOJoin(pio.FifoJoinTx)
	cfg.SetClkDiv(div)

	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(pin, 1, true)
	sm.SetEnabled(true)
	return newWS2812(sm, format), nil
}

func ws2812ProgramDefaultConfig(offset uint8) pio.StateMachineConfig {
	cfg := pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset+ws2812WrapTarget, offset+ws2812Wrap)
	cfg.SetSidesetParams(ws2812SidesetBits, false, false)
	return cfg
}
