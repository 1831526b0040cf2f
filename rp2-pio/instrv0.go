package pio

// AssemblerV0 provides a fluent API for programming PIO
// within the Go language for PIO version 0 (RP2040).
//
// SidesetBits is the number of delay/side-set bits reserved for side-set,
// which must match the SIDESET_COUNT of the state machine running the program.
// Optional side-set is not supported.
type AssemblerV0 struct {
	SidesetBits uint8
}

// instructionV0 is a single PIO instruction under construction.
type instructionV0 struct {
	instr       uint16
	sidesetBits uint8
}

// Encode returns the 16 bit machine word of the instruction.
func (instr instructionV0) Encode() uint16 { return instr.instr }

// Delay sets the number of idle cycles executed after the instruction.
// It panics if cycles does not fit in the bits left over by side-set.
func (instr instructionV0) Delay(cycles uint8) instructionV0 {
	if cycles > instr.maxDelay() {
		panic("pio:delay too large")
	}
	instr.instr |= uint16(cycles) << _INSTR_DELAYSIDE_Pos
	return instr
}

// Side sets the value driven onto the side-set pins while the instruction executes.
func (instr instructionV0) Side(value uint8) instructionV0 {
	if instr.sidesetBits == 0 {
		panic("pio:no side-set bits")
	}
	mask := uint16(1)<<instr.sidesetBits - 1
	instr.instr |= (uint16(value) & mask) << (13 - instr.sidesetBits)
	return instr
}

func (instr instructionV0) maxDelay() uint8 {
	return 1<<(5-instr.sidesetBits) - 1
}

func (asm AssemblerV0) instr(bits uint16) instructionV0 {
	if asm.SidesetBits > 5 {
		panic("pio:too many side-set bits")
	}
	return instructionV0{instr: bits, sidesetBits: asm.SidesetBits}
}

func (asm AssemblerV0) instrArgs(bits uint16, arg1 uint8, arg2 uint8) instructionV0 {
	return asm.instr(bits | uint16(arg1&0b111)<<5 | uint16(arg2&0x1f))
}

// Jmp jumps to addr when cond holds. addr is relative to the program start;
// [PIO.AddProgram] relocates it to the load offset.
func (asm AssemblerV0) Jmp(addr uint8, cond JmpCond) instructionV0 {
	return asm.instrArgs(_INSTR_BITS_JMP, uint8(cond), addr)
}

// Out shifts bitCount bits out of the OSR into dest. A bitCount of 32 is encoded as 0.
func (asm AssemblerV0) Out(dest OutDest, bitCount uint8) instructionV0 {
	return asm.instrArgs(_INSTR_BITS_OUT, uint8(dest), bitCount)
}

// Pull loads a word from the TX FIFO into the OSR.
//   - ifEmpty makes the pull a no-op until the pull threshold is reached.
//   - block stalls the state machine while the TX FIFO is empty.
func (asm AssemblerV0) Pull(ifEmpty bool, block bool) instructionV0 {
	return asm.instrArgs(_INSTR_BITS_PULL, boolAsU8(ifEmpty)<<1|boolAsU8(block), 0)
}

// Mov copies src into dest.
func (asm AssemblerV0) Mov(dest MovDest, src MovSrc) instructionV0 {
	return asm.instrArgs(_INSTR_BITS_MOV, uint8(dest), uint8(src)&0b111)
}

// MovInvert copies the bitwise inverse of src into dest.
func (asm AssemblerV0) MovInvert(dest MovDest, src MovSrc) instructionV0 {
	return asm.instrArgs(_INSTR_BITS_MOV, uint8(dest), 1<<3|uint8(src)&0b111)
}

// Set writes an immediate 5 bit value into dest.
func (asm AssemblerV0) Set(dest SetDest, value uint8) instructionV0 {
	return asm.instrArgs(_INSTR_BITS_SET, uint8(dest), value)
}

// Nop assembles to mov y, y.
func (asm AssemblerV0) Nop() instructionV0 {
	return asm.Mov(MovDestY, MovSrcY)
}
