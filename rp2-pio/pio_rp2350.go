//go:build rp2350

package pio

import "device/rp"

// PIO2 is the third PIO block, present only on the RP2350.
var PIO2 = &PIO{hw: rp.PIO2}

func (pio *PIO) blockIndex() uint8 {
	switch pio.hw {
	case rp.PIO0:
		return 0
	case rp.PIO1:
		return 1
	case rp.PIO2:
		return 2
	}
	panic(badPIO)
}
