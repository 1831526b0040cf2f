package pio

// Major opcode bits of a PIO instruction.
const (
	_INSTR_BITS_JMP  = 0x0000
	_INSTR_BITS_WAIT = 0x2000
	_INSTR_BITS_IN   = 0x4000
	_INSTR_BITS_OUT  = 0x6000
	_INSTR_BITS_PUSH = 0x8000
	_INSTR_BITS_PULL = 0x8080
	_INSTR_BITS_MOV  = 0xa000
	_INSTR_BITS_IRQ  = 0xc000
	_INSTR_BITS_SET  = 0xe000

	// Bit mask for instruction code
	_INSTR_BITS_Msk = 0xe000

	// Delay/side-set field, shared between delay cycles and side-set bits.
	_INSTR_DELAYSIDE_Pos = 8
	_INSTR_DELAYSIDE_Msk = 0x1f << _INSTR_DELAYSIDE_Pos

	// Jump target field.
	_INSTR_JMP_ADDR_Msk = 0x1f
)

// JmpCond is the condition of a JMP instruction.
type JmpCond uint8

const (
	// No condition, always jumps.
	JmpAlways JmpCond = iota
	// Jump if X is zero.
	JmpXZero
	// Jump if X is not zero, prior to decrement of X.
	JmpXNZeroDec
	// Jump if Y is zero.
	JmpYZero
	// Jump if Y is not zero, prior to decrement of Y.
	JmpYNZeroDec
	// Jump if X is not equal to Y.
	JmpXNotEqualY
	// Jump if EXECCTRL_JMP_PIN (state machine configured) is high.
	JmpPinInput
	// Compares the bits shifted out since last pull with the shift count theshold
	// (configured by SHIFTCTRL_PULL_THRESH) and jumps if there are remaining bits to shift.
	JmpOSRNotEmpty
)

// OutDest is the destination of an OUT instruction.
type OutDest uint8

const (
	OutDestPins    OutDest = 0b000
	OutDestX       OutDest = 0b001
	OutDestY       OutDest = 0b010
	OutDestNull    OutDest = 0b011
	OutDestPindirs OutDest = 0b100
	OutDestPC      OutDest = 0b101
	OutDestISR     OutDest = 0b110
	OutDestExec    OutDest = 0b111
)

// SetDest is the destination of a SET instruction.
type SetDest uint8

const (
	SetDestPins    SetDest = 0b000
	SetDestX       SetDest = 0b001
	SetDestY       SetDest = 0b010
	SetDestPindirs SetDest = 0b100
)

// MovDest is the destination of a MOV instruction.
type MovDest uint8

const (
	MovDestPins MovDest = 0b000
	MovDestX    MovDest = 0b001
	MovDestY    MovDest = 0b010
	MovDestExec MovDest = 0b100
	MovDestPC   MovDest = 0b101
	MovDestISR  MovDest = 0b110
	MovDestOSR  MovDest = 0b111
)

// MovSrc is the source of a MOV instruction.
type MovSrc uint8

const (
	MovSrcPins   MovSrc = 0b000
	MovSrcX      MovSrc = 0b001
	MovSrcY      MovSrc = 0b010
	MovSrcNull   MovSrc = 0b011
	MovSrcStatus MovSrc = 0b101
	MovSrcISR    MovSrc = 0b110
	MovSrcOSR    MovSrc = 0b111
)

func majorInstrBits(instr uint16) uint16 {
	return instr & _INSTR_BITS_Msk
}

// isJmp reports whether instr is a JMP, whose address field is relative to
// the program start until the program is loaded.
func isJmp(instr uint16) bool {
	return majorInstrBits(instr) == _INSTR_BITS_JMP
}

func boolAsU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
