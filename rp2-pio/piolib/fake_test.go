package piolib

import "time"

// wordTime is how long the state machine takes to shift out one RGB word at 800kHz.
const wordTime = 24 * 1250 * time.Nanosecond

// tailPolls is how many FIFO polls the last word spends in the output shift
// register after leaving the queue, before the state machine stalls.
const tailPolls = 8

type event struct {
	what string // "clear", "stall", "start" or "put"
	at   time.Duration
}

// fakeClock is the simulated time shared by a fakeFIFO and a fakeCountDown,
// with a log of what happened when.
type fakeClock struct {
	now    time.Duration
	events []event
}

func (c *fakeClock) record(what string) {
	c.events = append(c.events, event{what: what, at: c.now})
}

// fakeFIFO models the TX FIFO of a running state machine. Every poll of a
// full or non-empty FIFO lets the state machine pull one word. The last word
// pulled keeps shifting for tailPolls more polls, and only then does a poll
// of the empty FIFO latch the sticky stall flag.
type fakeFIFO struct {
	clk       *fakeClock
	depth     int
	paused    bool // state machine disabled: nothing drains
	queue     []uint32
	sent      []uint32
	shifting  int // polls left until the word in the shift register is out
	stalled   bool
	putTimes  []time.Duration
	fullPolls int
	overflow  bool
}

func newFakeFIFO(depth int) *fakeFIFO {
	return &fakeFIFO{clk: &fakeClock{}, depth: depth}
}

func (f *fakeFIFO) drain() {
	if f.paused {
		return
	}
	if len(f.queue) > 0 {
		f.sent = append(f.sent, f.queue[0])
		f.queue = f.queue[1:]
		f.clk.now += wordTime
		f.shifting = tailPolls
		return
	}
	if f.shifting > 0 {
		f.shifting--
		f.clk.now += wordTime / tailPolls
		return
	}
	if !f.stalled {
		f.stalled = true
		f.clk.record("stall")
	}
}

// words returns everything the driver has queued, in FIFO order.
func (f *fakeFIFO) words() []uint32 {
	return append(append([]uint32(nil), f.sent...), f.queue...)
}

func (f *fakeFIFO) TxPut(data uint32) {
	if len(f.queue) >= f.depth {
		f.overflow = true
		return
	}
	f.queue = append(f.queue, data)
	f.putTimes = append(f.putTimes, f.clk.now)
	f.clk.record("put")
}

func (f *fakeFIFO) IsTxFIFOFull() bool {
	if len(f.queue) < f.depth {
		return false
	}
	f.fullPolls++
	f.drain()
	return true
}

func (f *fakeFIFO) IsTxFIFOEmpty() bool {
	f.drain()
	return len(f.queue) == 0
}

func (f *fakeFIFO) HasTxStalled() bool { return f.stalled }

func (f *fakeFIFO) ClearTxStalled() {
	f.stalled = false
	f.clk.record("clear")
}

// fakeCountDown advances the shared clock instead of sleeping.
type fakeCountDown struct {
	clk     *fakeClock
	armed   bool
	expires time.Duration
	starts  []time.Duration
}

func (cd *fakeCountDown) Start(d time.Duration) {
	cd.armed = true
	cd.expires = cd.clk.now + d
	cd.starts = append(cd.starts, d)
	cd.clk.record("start")
}

func (cd *fakeCountDown) Wait() {
	if !cd.armed {
		panic("Wait without Start")
	}
	cd.clk.now = max(cd.clk.now, cd.expires)
	cd.armed = false
}

// fakeSM is the claim state of a state machine.
type fakeSM struct {
	claimed  bool
	enabled  bool
	unclaims int
}

func (sm *fakeSM) TryClaim() bool {
	if sm.claimed {
		return false
	}
	sm.claimed = true
	return true
}

func (sm *fakeSM) Unclaim() {
	sm.claimed = false
	sm.unclaims++
}

func (sm *fakeSM) IsEnabled() bool { return sm.enabled }

type recordingWriter struct {
	frames [][]RGBW
}

func (w *recordingWriter) WriteRGBW(buf []RGBW) {
	w.frames = append(w.frames, append([]RGBW(nil), buf...))
}
