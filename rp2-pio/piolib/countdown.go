package piolib

import "time"

// CountDown is a one-shot timer used to hold the line low between frames.
type CountDown interface {
	// Start arms the timer to expire d from now.
	Start(d time.Duration)
	// Wait blocks until the armed timer expires.
	Wait()
}

// BusyCountDown is a CountDown that polls the monotonic clock, yielding
// to other goroutines between polls.
type BusyCountDown struct {
	start time.Time
	d     time.Duration
}

func (cd *BusyCountDown) Start(d time.Duration) {
	cd.start = time.Now()
	cd.d = d
}

func (cd *BusyCountDown) Wait() {
	for time.Since(cd.start) < cd.d {
		gosched()
	}
}
