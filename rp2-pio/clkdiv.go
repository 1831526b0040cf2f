package pio

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrClkDivRange is returned when a state machine frequency cannot be
// reached with a divisor in the range [1, 65536].
var ErrClkDivRange = errors.New("pio: clock divisor out of range [1.0, 65536.0]")

// maxClkDivInt is the largest integer divisor. It is encoded as 0 in CLKDIV_INT.
const maxClkDivInt = 65536

// ClkDiv is a state machine clock divisor in the fixed point format of the
// CLKDIV register:
//
//	Frequency = clock freq / (Int + Frac/256)
//
// An Int of 0 represents 65536, in which case Frac is always 0.
type ClkDiv struct {
	Int  uint16
	Frac uint8
}

// Divisor256 returns the divisor multiplied by 256, with the 65536 encoding expanded.
func (d ClkDiv) Divisor256() uint32 {
	whole := uint32(d.Int)
	if whole == 0 {
		whole = maxClkDivInt
	}
	return whole<<8 | uint32(d.Frac)
}

func (d ClkDiv) String() string {
	whole := uint32(d.Int)
	if whole == 0 {
		whole = maxClkDivInt
	}
	return strconv.FormatUint(uint64(whole), 10) + "+" + strconv.Itoa(int(d.Frac)) + "/256"
}

// ClkDivFromFrequency calculates the CLKDIV register values to run a state
// machine at freq given the clock feeding the PIO block. freq and cpuFreq are
// expected to be in Hz.
//
// The fractional part is truncated, so the resulting frequency is never
// above freq. An error wrapping ErrClkDivRange is returned if the divisor
// falls outside of [1, 65536].
func ClkDivFromFrequency(freq, cpuFreq uint32) (ClkDiv, error) {
	if freq == 0 {
		return ClkDiv{}, fmt.Errorf("%w: zero state machine frequency", ErrClkDivRange)
	}
	whole := uint64(cpuFreq) / uint64(freq)
	rem := uint64(cpuFreq) - whole*uint64(freq)
	frac := rem * 256 / uint64(freq)
	if whole < 1 || whole > maxClkDivInt || (whole == maxClkDivInt && frac != 0) {
		return ClkDiv{}, fmt.Errorf("%w: %d Hz / %d Hz", ErrClkDivRange, cpuFreq, freq)
	}
	// Truncation encodes 65536 as 0.
	return ClkDiv{Int: uint16(whole), Frac: uint8(frac)}, nil
}
