//go:build rp2040 || rp2350

package pio

import (
	"device/rp"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// StateMachine is one of the four state machines of a PIO block. It is a
// small value that can be copied; claim state lives in the block.
type StateMachine struct {
	pio   *PIO
	index uint8
}

func (sm StateMachine) bit() uint8 { return 1 << sm.index }

// IsClaimed reports whether some driver owns sm.
func (sm StateMachine) IsClaimed() bool { return sm.pio.claimed&sm.bit() != 0 }

// TryClaim claims sm and reports whether it was free. sm is claimed
// afterwards either way.
func (sm StateMachine) TryClaim() bool {
	free := !sm.IsClaimed()
	sm.pio.claimed |= sm.bit()
	return free
}

// Unclaim returns sm to the pool.
func (sm StateMachine) Unclaim() { sm.pio.claimed &^= sm.bit() }

// PIO returns the block sm belongs to.
func (sm StateMachine) PIO() *PIO { return sm.pio }

func (sm StateMachine) regs() *smRegs { return &sm.pio.regs().SM[sm.index] }

// Init stops sm, loads cfg, empties both FIFOs, clears the sticky debug
// flags and jumps to initialPC. sm is left stopped.
func (sm StateMachine) Init(initialPC uint8, cfg StateMachineConfig) {
	sm.SetEnabled(false)
	r := sm.regs()
	r.CLKDIV.Set(cfg.ClkDiv)
	r.EXECCTRL.Set(cfg.ExecCtrl)
	r.SHIFTCTRL.Set(cfg.ShiftCtrl)
	r.PINCTRL.Set(cfg.PinCtrl)
	sm.clearFIFOs()

	const fdebug = 1<<rp.PIO0_FDEBUG_TXOVER_Pos | 1<<rp.PIO0_FDEBUG_RXUNDER_Pos |
		1<<rp.PIO0_FDEBUG_TXSTALL_Pos | 1<<rp.PIO0_FDEBUG_RXSTALL_Pos
	sm.pio.hw.FDEBUG.Set(fdebug << sm.index) // write 1 to clear

	// Reset the shift counters and the clock divider phase.
	const restart = 1<<rp.PIO0_CTRL_SM_RESTART_Pos | 1<<rp.PIO0_CTRL_CLKDIV_RESTART_Pos
	sm.pio.hw.CTRL.SetBits(restart << sm.index)
	sm.exec(AssemblerV0{}.Jmp(initialPC, JmpAlways).Encode())
}

// SetEnabled starts or stops sm.
func (sm StateMachine) SetEnabled(enabled bool) {
	mask := uint32(1) << (rp.PIO0_CTRL_SM_ENABLE_Pos + sm.index)
	if enabled {
		sm.pio.hw.CTRL.SetBits(mask)
	} else {
		sm.pio.hw.CTRL.ClearBits(mask)
	}
}

// IsEnabled reports whether sm is running.
func (sm StateMachine) IsEnabled() bool {
	return sm.pio.hw.CTRL.HasBits(1 << (rp.PIO0_CTRL_SM_ENABLE_Pos + sm.index))
}

// TxPut writes data to the TX FIFO without checking for room. A write to a
// full FIFO is dropped and sets the sticky TXOVER flag.
func (sm StateMachine) TxPut(data uint32) {
	sm.pio.regs().TXF[sm.index].Set(data)
}

// IsTxFIFOEmpty reports whether the TX FIFO holds no words.
func (sm StateMachine) IsTxFIFOEmpty() bool {
	return sm.pio.hw.FSTAT.HasBits(1 << (rp.PIO0_FSTAT_TXEMPTY_Pos + sm.index))
}

// IsTxFIFOFull reports whether a TxPut would be dropped.
func (sm StateMachine) IsTxFIFOFull() bool {
	return sm.pio.hw.FSTAT.HasBits(1 << (rp.PIO0_FSTAT_TXFULL_Pos + sm.index))
}

// HasTxStalled reports the sticky TXSTALL flag: sm tried to pull from an
// empty TX FIFO since the flag was last cleared.
func (sm StateMachine) HasTxStalled() bool {
	return sm.pio.hw.FDEBUG.HasBits(1 << (rp.PIO0_FDEBUG_TXSTALL_Pos + sm.index))
}

// ClearTxStalled clears the TXSTALL flag.
func (sm StateMachine) ClearTxStalled() {
	sm.pio.hw.FDEBUG.Set(1 << (rp.PIO0_FDEBUG_TXSTALL_Pos + sm.index))
}

// clearFIFOs flushes both FIFOs. The hardware flushes them whenever
// FJOIN_RX changes, so the bit is toggled twice.
func (sm StateMachine) clearFIFOs() {
	shiftctrl := &sm.regs().SHIFTCTRL
	toggleBits(shiftctrl, rp.PIO0_SM0_SHIFTCTRL_FJOIN_RX_Msk)
	toggleBits(shiftctrl, rp.PIO0_SM0_SHIFTCTRL_FJOIN_RX_Msk)
}

func (sm StateMachine) exec(instr uint16) {
	sm.regs().INSTR.Set(uint32(instr))
}

// SetPindirsConsecutive makes count pins starting at pin outputs (isOut) or
// inputs by executing one SET PINDIRS per pin. Call it while sm is stopped;
// its pin and exec configuration is restored afterwards.
func (sm StateMachine) SetPindirsConsecutive(pin machine.Pin, count uint8, isOut bool) {
	checkPinBaseAndCount(pin, count)
	r := sm.regs()
	pinctrl, execctrl := r.PINCTRL.Get(), r.EXECCTRL.Get()
	r.EXECCTRL.ClearBits(1 << rp.PIO0_SM0_EXECCTRL_OUT_STICKY_Pos)
	dir := uint8(boolToBit(isOut))
	for p := uint32(pin); p < uint32(pin)+uint32(count); p++ {
		r.PINCTRL.Set(1<<rp.PIO0_SM0_PINCTRL_SET_COUNT_Pos | p<<rp.PIO0_SM0_PINCTRL_SET_BASE_Pos)
		sm.exec(AssemblerV0{}.Set(SetDestPindirs, dir).Encode())
	}
	r.PINCTRL.Set(pinctrl)
	r.EXECCTRL.Set(execctrl)
}

// toggleBits flips mask in reg with a single write to the atomic XOR alias
// of the register (RP2040 datasheet 2.1.2).
func toggleBits(reg *volatile.Register32, mask uint32) {
	const xorAlias = 0x1000
	alias := (*volatile.Register32)(unsafe.Pointer(uintptr(unsafe.Pointer(reg)) | xorAlias))
	alias.Set(mask)
}
