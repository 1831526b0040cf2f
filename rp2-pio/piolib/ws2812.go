package piolib

import (
	"image/color"
	"iter"
	"math"
	"time"

	pio "github.com/tinygo-org/ws2812pio/rp2-pio"
	"periph.io/x/conn/v3/physic"
)

// WS2812BitRate is the data rate of WS2812 and SK6812 LEDs.
const WS2812BitRate = 800 * physic.KiloHertz

// Cycle counts of the three phases of a bit cell. The line is high for T1
// cycles, then carries the data bit for T2 cycles, then is low for T3 cycles.
const (
	ws2812T1           = 2
	ws2812T2           = 5
	ws2812T3           = 3
	ws2812CyclesPerBit = ws2812T1 + ws2812T2 + ws2812T3

	ws2812SidesetBits = 1
	ws2812Origin      = -1 // relocatable
	ws2812WrapTarget  = 0
	ws2812Wrap        = 3
)

var ws2812Instructions = ws2812Program()

func ws2812Program() []uint16 {
	const (
		bitloop = ws2812WrapTarget
		doZero  = ws2812Wrap
	)
	asm := pio.AssemblerV0{SidesetBits: ws2812SidesetBits}
	return []uint16{
		//     .wrap_target
		bitloop: asm.Out(pio.OutDestX, 1).Side(0).Delay(ws2812T3 - 1).Encode(), // 0: out x, 1   side 0 [2]
		asm.Jmp(doZero, pio.JmpXZero).Side(1).Delay(ws2812T1 - 1).Encode(),   // 1: jmp !x, 3  side 1 [1]
		asm.Jmp(bitloop, pio.JmpAlways).Side(1).Delay(ws2812T2 - 1).Encode(), // 2: jmp 0      side 1 [4]
		doZero: asm.Nop().Side(0).Delay(ws2812T2 - 1).Encode(), // 3: nop        side 0 [4]
		//     .wrap
	}
}

// WS2812Program returns the PIO program that drives the LED line. It is
// linked at offset 0 and has one side-set pin; jump targets must be
// relocated by the load offset.
func WS2812Program() []uint16 {
	return append([]uint16(nil), ws2812Instructions...)
}

// ws2812ClkDiv returns the divisor that runs the program at
// ws2812CyclesPerBit state machine cycles per bit.
func ws2812ClkDiv(sysclk physic.Frequency) (pio.ClkDiv, error) {
	hz := sysclk / physic.Hertz
	if hz <= 0 || hz > math.MaxUint32 {
		return pio.ClkDiv{}, pio.ErrClkDivRange
	}
	smFreq := uint32(WS2812BitRate/physic.Hertz) * ws2812CyclesPerBit
	return pio.ClkDivFromFrequency(smFreq, uint32(hz))
}

// txFIFO is the part of a state machine the driver writes through.
// pio.StateMachine implements it.
type txFIFO interface {
	TxPut(data uint32)
	IsTxFIFOFull() bool
	IsTxFIFOEmpty() bool
	HasTxStalled() bool
	ClearTxStalled()
}

// smClaimer is the claim bookkeeping of a state machine. pio.StateMachine implements it.
type smClaimer interface {
	TryClaim() bool
	Unclaim()
	IsEnabled() bool
}

// claimIdle claims sm for a new driver and fails if sm is already running.
// release drops the claim only if claimIdle made it, so a state machine the
// caller claimed beforehand stays claimed when construction fails.
func claimIdle(sm smClaimer) (release func(), err error) {
	claimed := sm.TryClaim()
	release = func() {
		if claimed {
			sm.Unclaim()
		}
	}
	if sm.IsEnabled() {
		release()
		return nil, ErrStateMachineBusy
	}
	return release, nil
}

// WS2812 drives a chain of WS2812 or SK6812 LEDs from a PIO state machine.
// Writes block while the TX FIFO is full and return once the last word
// has been queued, not once it has been shifted out.
type WS2812 struct {
	sm     txFIFO
	format ColorFormat
	pack   func(RGBW) uint32
}

func newWS2812(sm txFIFO, format ColorFormat) *WS2812 {
	return &WS2812{
		sm:     sm,
		format: format,
		pack:   format.packer(),
	}
}

// Format returns the color format the driver was created with.
func (ws *WS2812) Format() ColorFormat { return ws.format }

// IsQueueFull reports whether a write would block.
func (ws *WS2812) IsQueueFull() bool { return ws.sm.IsTxFIFOFull() }

// PutRaw queues one pre-encoded word, waiting for FIFO space.
func (ws *WS2812) PutRaw(word uint32) {
	for ws.sm.IsTxFIFOFull() {
		gosched()
	}
	ws.sm.TxPut(word)
}

// TryPutRaw queues word if there is room and returns ErrQueueFull otherwise.
func (ws *WS2812) TryPutRaw(word uint32) error {
	if ws.sm.IsTxFIFOFull() {
		return ErrQueueFull
	}
	ws.sm.TxPut(word)
	return nil
}

// PutRGB queues a single LED color.
func (ws *WS2812) PutRGB(r, g, b uint8) {
	ws.PutRaw(ws.pack(RGBW{R: r, G: g, B: b}))
}

// PutRGBW queues a single LED color. W is dropped for FormatRGB.
func (ws *WS2812) PutRGBW(c RGBW) {
	ws.PutRaw(ws.pack(c))
}

// PutColor queues a single LED color.
func (ws *WS2812) PutColor(c color.Color) {
	ws.PutRaw(ws.pack(toRGBW(c)))
}

// WriteRaw queues pre-encoded words in order.
func (ws *WS2812) WriteRaw(words []uint32) {
	for _, w := range words {
		ws.PutRaw(w)
	}
}

// WriteColors queues one word per color in order.
func (ws *WS2812) WriteColors(buf []color.RGBA) {
	for _, c := range buf {
		ws.PutRaw(ws.pack(RGBW{R: c.R, G: c.G, B: c.B}))
	}
}

// WriteRGBW queues one word per color in order.
func (ws *WS2812) WriteRGBW(buf []RGBW) {
	for _, c := range buf {
		ws.PutRaw(ws.pack(c))
	}
}

// Write queues one word per color produced by colors.
func (ws *WS2812) Write(colors iter.Seq[color.Color]) {
	for c := range colors {
		ws.PutRaw(ws.pack(toRGBW(c)))
	}
}

// TryWriteRGBW queues colors until the FIFO fills up. It returns the number
// of colors queued and ErrQueueFull if not all of buf fit.
func (ws *WS2812) TryWriteRGBW(buf []RGBW) (n int, err error) {
	for n = range buf {
		if ws.sm.IsTxFIFOFull() {
			return n, ErrQueueFull
		}
		ws.sm.TxPut(ws.pack(buf[n]))
	}
	return len(buf), nil
}

// waitIdle blocks until the state machine has drained its FIFO and
// stalled waiting for more data. The stall flag is sticky and is cleared
// first so a stall from a previous frame is not mistaken for this one.
func (ws *WS2812) waitIdle() {
	ws.sm.ClearTxStalled()
	for !ws.sm.IsTxFIFOEmpty() || !ws.sm.HasTxStalled() {
		gosched()
	}
}

// LatchDelay is the minimum time the line is held low between frames so
// the LEDs latch the colors they received.
const LatchDelay = 60 * time.Microsecond

// LatchedWS2812 wraps a WS2812 so that every write starts a new frame:
// before queueing anything it waits for the previous frame to finish
// shifting out and then holds the line low for the latch delay.
type LatchedWS2812 struct {
	dev   *WS2812
	cd    CountDown
	delay time.Duration
}

// NewLatchedWS2812 returns a latching wrapper around dev. A nil cd uses a
// BusyCountDown.
func NewLatchedWS2812(dev *WS2812, cd CountDown) *LatchedWS2812 {
	if cd == nil {
		cd = &BusyCountDown{}
	}
	return &LatchedWS2812{dev: dev, cd: cd, delay: LatchDelay}
}

// SetLatchDelay sets the reset time between frames. Values below
// LatchDelay are raised to LatchDelay.
func (l *LatchedWS2812) SetLatchDelay(d time.Duration) {
	l.delay = max(d, LatchDelay)
}

// LatchDelay returns the current reset time between frames.
func (l *LatchedWS2812) LatchDelay() time.Duration { return l.delay }

// Format returns the color format of the wrapped driver.
func (l *LatchedWS2812) Format() ColorFormat { return l.dev.format }

// latch waits out the previous frame and the reset time.
func (l *LatchedWS2812) latch() {
	l.dev.waitIdle()
	l.cd.Start(l.delay)
	l.cd.Wait()
}

// WriteRaw writes words as a new frame.
func (l *LatchedWS2812) WriteRaw(words []uint32) {
	l.latch()
	l.dev.WriteRaw(words)
}

// WriteColors writes buf as a new frame.
func (l *LatchedWS2812) WriteColors(buf []color.RGBA) {
	l.latch()
	l.dev.WriteColors(buf)
}

// WriteRGBW writes buf as a new frame.
func (l *LatchedWS2812) WriteRGBW(buf []RGBW) {
	l.latch()
	l.dev.WriteRGBW(buf)
}

// Write writes colors as a new frame.
func (l *LatchedWS2812) Write(colors iter.Seq[color.Color]) {
	l.latch()
	l.dev.Write(colors)
}
