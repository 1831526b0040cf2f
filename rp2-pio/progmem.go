package pio

import "errors"

// PIO errors.
var (
	ErrOutOfProgramSpace = errors.New("pio: out of program space")
	ErrNoSpaceAtOffset   = errors.New("pio: program space unavailable at offset")
	ErrProgramTooLong    = errors.New("pio: program longer than instruction memory")
)

// instrMemSize is the number of instruction slots shared by the state machines of a PIO block.
const instrMemSize = 32

// instrMemory tracks used instruction slots of a PIO block, one bit per slot.
type instrMemory uint32

func programMask(programLen int) uint32 {
	return uint32(1<<uint32(programLen)) - 1
}

// findOffset returns where a program of programLen instructions can be
// loaded or -1 if there is no room. origin is the fixed load address of a
// non-relocatable program or -1.
func (mem instrMemory) findOffset(programLen int, origin int8) int8 {
	if programLen > instrMemSize {
		return -1
	}
	mask := programMask(programLen)

	// Program has fixed offset (not relocatable)
	if origin >= 0 {
		if int(origin) > instrMemSize-programLen {
			return -1
		}
		if uint32(mem)&(mask<<uint32(origin)) != 0 {
			return -1
		}
		return origin
	}

	// work down from the top always
	for i := int8(instrMemSize - programLen); i >= 0; i-- {
		if uint32(mem)&(mask<<uint32(i)) == 0 {
			return i
		}
	}
	return -1
}

// claim marks programLen slots starting at offset as used.
func (mem *instrMemory) claim(programLen int, offset uint8) {
	*mem |= instrMemory(programMask(programLen) << offset)
}

// relocate returns the machine word of instr once loaded at offset.
// Jump targets are assembled relative to the program start.
func relocate(instr uint16, offset uint8) uint16 {
	if !isJmp(instr) {
		return instr
	}
	addr := (instr&_INSTR_JMP_ADDR_Msk + uint16(offset)) & _INSTR_JMP_ADDR_Msk
	return instr&^_INSTR_JMP_ADDR_Msk | addr
}
