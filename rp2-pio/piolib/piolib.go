package piolib

import (
	"errors"
	"runtime"
)

var (
	// ErrQueueFull is returned by non-blocking writes when the TX FIFO has no room.
	ErrQueueFull = errors.New("piolib:queue full")
	// ErrStateMachineBusy is returned when constructing a driver on a state
	// machine that is already running another program.
	ErrStateMachineBusy = errors.New("piolib:state machine already running")
)

// gosched yields while busy waiting on the PIO.
func gosched() {
	runtime.Gosched()
}
