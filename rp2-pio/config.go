//go:build rp2040 || rp2350

package pio

import (
	"device/rp"
	"machine"
)

// StateMachineConfig holds the per state machine registers that
// StateMachine.Init writes. Build it with the setters below.
type StateMachineConfig struct {
	ClkDiv    uint32
	ExecCtrl  uint32
	ShiftCtrl uint32
	PinCtrl   uint32
}

// DefaultStateMachineConfig returns the reset configuration: full speed,
// wrapping over all of instruction memory, both shift registers shifting
// right with a 32 bit threshold and no autopush or autopull.
func DefaultStateMachineConfig() StateMachineConfig {
	var cfg StateMachineConfig
	cfg.SetClkDiv(ClkDiv{Int: 1})
	cfg.SetWrap(0, instrMemSize-1)
	cfg.ShiftCtrl = 1<<rp.PIO0_SM0_SHIFTCTRL_IN_SHIFTDIR_Pos | 1<<rp.PIO0_SM0_SHIFTCTRL_OUT_SHIFTDIR_Pos
	return cfg
}

// setField replaces the bits of reg selected by mask with v shifted to pos.
func setField(reg *uint32, mask, pos, v uint32) {
	*reg = *reg&^mask | v<<pos&mask
}

// SetClkDiv sets the state machine clock to the system clock divided by div.
func (cfg *StateMachineConfig) SetClkDiv(div ClkDiv) {
	cfg.ClkDiv = uint32(div.Int)<<rp.PIO0_SM0_CLKDIV_INT_Pos | uint32(div.Frac)<<rp.PIO0_SM0_CLKDIV_FRAC_Pos
}

// SetWrap sets the absolute addresses execution wraps from (wrap) and to
// (wrapTarget). Add the program's load offset to its relative wrap points.
func (cfg *StateMachineConfig) SetWrap(wrapTarget, wrap uint8) {
	if wrapTarget >= instrMemSize || wrap >= instrMemSize {
		panic("pio:bad wrap")
	}
	setField(&cfg.ExecCtrl, rp.PIO0_SM0_EXECCTRL_WRAP_BOTTOM_Msk, rp.PIO0_SM0_EXECCTRL_WRAP_BOTTOM_Pos, uint32(wrapTarget))
	setField(&cfg.ExecCtrl, rp.PIO0_SM0_EXECCTRL_WRAP_TOP_Msk, rp.PIO0_SM0_EXECCTRL_WRAP_TOP_Pos, uint32(wrap))
}

// SetOutShift configures the output shift register. shiftRight false shifts
// MSB first. With autoPull the OSR refills from the TX FIFO once
// pullThreshold bits (1..32) have been shifted out.
func (cfg *StateMachineConfig) SetOutShift(shiftRight, autoPull bool, pullThreshold uint16) {
	setField(&cfg.ShiftCtrl, rp.PIO0_SM0_SHIFTCTRL_OUT_SHIFTDIR_Msk, rp.PIO0_SM0_SHIFTCTRL_OUT_SHIFTDIR_Pos, boolToBit(shiftRight))
	setField(&cfg.ShiftCtrl, rp.PIO0_SM0_SHIFTCTRL_AUTOPULL_Msk, rp.PIO0_SM0_SHIFTCTRL_AUTOPULL_Pos, boolToBit(autoPull))
	// 32 is encoded as 0.
	setField(&cfg.ShiftCtrl, rp.PIO0_SM0_SHIFTCTRL_PULL_THRESH_Msk, rp.PIO0_SM0_SHIFTCTRL_PULL_THRESH_Pos, uint32(pullThreshold&0x1f))
}

// SetSidesetParams sets how many delay bits of each instruction drive
// side-set pins (0..5), whether the top one is an enable flag (optional) and
// whether side-set drives pin directions instead of levels.
func (cfg *StateMachineConfig) SetSidesetParams(bitCount uint8, optional, pindirs bool) {
	if bitCount > 5 {
		panic("pio:too many side-set bits")
	}
	setField(&cfg.PinCtrl, rp.PIO0_SM0_PINCTRL_SIDESET_COUNT_Msk, rp.PIO0_SM0_PINCTRL_SIDESET_COUNT_Pos, uint32(bitCount))
	setField(&cfg.ExecCtrl, rp.PIO0_SM0_EXECCTRL_SIDE_EN_Msk, rp.PIO0_SM0_EXECCTRL_SIDE_EN_Pos, boolToBit(optional))
	setField(&cfg.ExecCtrl, rp.PIO0_SM0_EXECCTRL_SIDE_PINDIR_Msk, rp.PIO0_SM0_EXECCTRL_SIDE_PINDIR_Pos, boolToBit(pindirs))
}

// SetSidesetPins sets the lowest pin driven by side-set.
func (cfg *StateMachineConfig) SetSidesetPins(firstPin machine.Pin) {
	checkPinBaseAndCount(firstPin, 1)
	setField(&cfg.PinCtrl, rp.PIO0_SM0_PINCTRL_SIDESET_BASE_Msk, rp.PIO0_SM0_PINCTRL_SIDESET_BASE_Pos, uint32(firstPin))
}

func checkPinBaseAndCount(base machine.Pin, count uint8) {
	if base >= 32 {
		panic("pio:bad pin")
	} else if count > 32 {
		panic("pio:count too large")
	}
}

// FifoJoin selects how the eight FIFO words of a state machine are split.
type FifoJoin uint8

const (
	// FifoJoinNone gives TX and RX four words each.
	FifoJoinNone FifoJoin = iota
	// FifoJoinTx gives all eight words to TX.
	FifoJoinTx
	// FifoJoinRx gives all eight words to RX.
	FifoJoinRx
)

// SetFIFOJoin sets the FIFO split.
func (cfg *StateMachineConfig) SetFIFOJoin(join FifoJoin) {
	if join > FifoJoinRx {
		panic("pio:bad FIFO join")
	}
	setField(&cfg.ShiftCtrl, rp.PIO0_SM0_SHIFTCTRL_FJOIN_TX_Msk|rp.PIO0_SM0_SHIFTCTRL_FJOIN_RX_Msk,
		rp.PIO0_SM0_SHIFTCTRL_FJOIN_TX_Pos, uint32(join))
}

func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
