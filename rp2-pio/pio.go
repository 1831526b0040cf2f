//go:build rp2040 || rp2350

package pio

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// PIO blocks present on both chips.
var (
	PIO0 = &PIO{hw: rp.PIO0}
	PIO1 = &PIO{hw: rp.PIO1}
)

const numStateMachines = 4

var errNoFreeStateMachine = errors.New("pio: all state machines claimed")

const (
	badStateMachineIndex = "pio:bad state machine index"
	badPIO               = "pio:bad PIO"
)

// PIO is one PIO block: 32 words of instruction memory shared by four
// state machines. Use the PIO0, PIO1 (and PIO2 on RP2350) handles.
type PIO struct {
	hw      *rp.PIO0_Type
	mem     instrMemory
	claimed uint8 // bit n set while state machine n is in use
}

// BlockIndex returns the number of the block, 0 for PIO0.
func (pio *PIO) BlockIndex() uint8 {
	return pio.blockIndex()
}

// StateMachine returns state machine index of the block without claiming it.
func (pio *PIO) StateMachine(index uint8) StateMachine {
	if index >= numStateMachines {
		panic(badStateMachineIndex)
	}
	return StateMachine{pio: pio, index: index}
}

// ClaimStateMachine claims the lowest numbered free state machine.
func (pio *PIO) ClaimStateMachine() (StateMachine, error) {
	for i := uint8(0); i < numStateMachines; i++ {
		if sm := pio.StateMachine(i); sm.TryClaim() {
			return sm, nil
		}
	}
	return StateMachine{}, errNoFreeStateMachine
}

// AddProgram writes instructions into instruction memory and returns the
// load offset. origin is the offset the program was assembled for, or -1 to
// place it in the highest free range. Jump targets are relocated to the
// load offset.
func (pio *PIO) AddProgram(instructions []uint16, origin int8) (offset uint8, err error) {
	n := len(instructions)
	if n > instrMemSize {
		return 0, ErrProgramTooLong
	}
	at := pio.mem.findOffset(n, origin)
	if at < 0 {
		if origin >= 0 {
			return 0, ErrNoSpaceAtOffset
		}
		return 0, ErrOutOfProgramSpace
	}
	offset = uint8(at)
	slots := &pio.regs().INSTR_MEM
	for i, instr := range instructions {
		// Only the low half of each slot is used.
		slots[int(offset)+i].Set(uint32(relocate(instr, offset)))
	}
	pio.mem.claim(n, offset)
	return offset, nil
}

// PinMode returns the GPIO function that hands a pin to this block.
func (pio *PIO) PinMode() machine.PinMode {
	return machine.PinPIO0 + machine.PinMode(pio.BlockIndex())
}

// pioRegs overlays the start of a PIO register block. device/rp declares
// instruction memory and the state machine registers as individual fields;
// here they are arrays so they can be indexed.
type pioRegs struct {
	CTRL      volatile.Register32 // 0x00
	FSTAT     volatile.Register32 // 0x04
	FDEBUG    volatile.Register32 // 0x08
	FLEVEL    volatile.Register32 // 0x0c
	TXF       [numStateMachines]volatile.Register32
	RXF       [numStateMachines]volatile.Register32
	_         [6]volatile.Register32            // 0x30 IRQ .. 0x44 DBG_CFGINFO
	INSTR_MEM [instrMemSize]volatile.Register32 // 0x48
	SM        [numStateMachines]smRegs          // 0xc8
}

// smRegs are the registers of one state machine.
type smRegs struct {
	CLKDIV    volatile.Register32
	EXECCTRL  volatile.Register32
	SHIFTCTRL volatile.Register32
	ADDR      volatile.Register32
	INSTR     volatile.Register32
	PINCTRL   volatile.Register32
}

// Fails to compile if the overlay drifts from the register map.
var _ = [1]struct{}{}[unsafe.Offsetof(pioRegs{}.SM)-0xc8]

func (pio *PIO) regs() *pioRegs {
	return (*pioRegs)(unsafe.Pointer(pio.hw))
}
