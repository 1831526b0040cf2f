package pio

import (
	"testing"
)

func TestAssemblerV0_ws2812(t *testing.T) {
	assm := AssemblerV0{
		SidesetBits: 1,
	}
	const (
		bitloop = 0
		doZero  = 3
	)
	var program = []uint16{
		//     .wrap_target
		bitloop: assm.Out(OutDestX, 1).Side(0).Delay(2).Encode(), //  0: out    x, 1            side 0 [2]
		assm.Jmp(doZero, JmpXZero).Side(1).Delay(1).Encode(),   //  1: jmp    !x, 3           side 1 [1]
		assm.Jmp(bitloop, JmpAlways).Side(1).Delay(4).Encode(), //  2: jmp    0               side 1 [4]
		doZero: assm.Nop().Side(0).Delay(4).Encode(), //  3: nop                    side 0 [4]
		//     .wrap
	}
	var expectedProgram = []uint16{
		0x6221,
		0x1123,
		0x1400,
		0xa442,
	}
	checkProgram(t, program, expectedProgram)
}

func TestAssemblerV0_spi3w(t *testing.T) {
	assm := AssemblerV0{
		SidesetBits: 1,
	}
	const (
		wloopOff = 0
		endOff   = 7
	)

	var program = []uint16{
		//     .wrap_target
		// write out x-1 bits.
		wloopOff:// Write/Output loop.
		assm.Out(OutDestPins, 1).Side(0).Encode(), //  0: out    pins, 1         side 0
		assm.Jmp(wloopOff, JmpXNZeroDec).Side(1).Encode(), //  1: jmp    x--, 0          side 1
		assm.Jmp(endOff, JmpYZero).Side(0).Encode(),       //  2: jmp    !y, 7           side 0
		assm.Set(SetDestPindirs, 0).Side(0).Encode(),      //  3: set    pindirs, 0      side 0
		assm.Nop().Side(0).Encode(),                       //  4: nop                    side 0
	}
	var expectedProgram = []uint16{
		0x6001, //  0: out    pins, 1         side 0
		0x1040, //  1: jmp    x--, 0          side 1
		0x0067, //  2: jmp    !y, 7           side 0
		0xe080, //  3: set    pindirs, 0      side 0
		0xa042, //  4: nop                    side 0
	}
	checkProgram(t, program, expectedProgram)
}

func TestAssemblerV0_noSideset(t *testing.T) {
	assm := AssemblerV0{}
	var program = []uint16{
		assm.Pull(false, true).Encode(),            // 0: pull block
		assm.Out(OutDestX, 16).Encode(),            // 1: out x, 16
		assm.Set(SetDestPins, 1).Delay(7).Encode(), // 2: set pins, 1 [7]
		assm.Jmp(2, JmpXNZeroDec).Encode(),         // 3: jmp x--, 2
		assm.MovInvert(MovDestX, MovSrcX).Encode(), // 4: mov x, ~x
		assm.Out(OutDestNull, 32).Encode(),         // 5: out null, 32
	}
	var expectedProgram = []uint16{
		0x80a0,
		0x6030,
		0xe701,
		0x0042,
		0xa029,
		0x6060,
	}
	checkProgram(t, program, expectedProgram)
}

func TestAssemblerV0_delayOverflow(t *testing.T) {
	for _, tc := range []struct {
		sideset  uint8
		maxDelay uint8
	}{
		{sideset: 0, maxDelay: 31},
		{sideset: 1, maxDelay: 15},
		{sideset: 3, maxDelay: 3},
		{sideset: 5, maxDelay: 0},
	} {
		assm := AssemblerV0{SidesetBits: tc.sideset}
		got := assm.Nop().Delay(tc.maxDelay).Encode()
		if want := 0xa042 | uint16(tc.maxDelay)<<8; got != want {
			t.Errorf("sideset=%d: max delay encoded as %#x, want %#x", tc.sideset, got, want)
		}
		if !panics(func() { assm.Nop().Delay(tc.maxDelay + 1) }) {
			t.Errorf("sideset=%d: expected panic for delay %d", tc.sideset, tc.maxDelay+1)
		}
	}
}

func TestAssemblerV0_sideMasked(t *testing.T) {
	got := AssemblerV0{SidesetBits: 2}.Nop().Side(0b111).Encode()
	if want := uint16(0xa042 | 0b11<<11); got != want {
		t.Errorf("got %#x, want %#x", got, want)
	}
	if !panics(func() { AssemblerV0{}.Nop().Side(1) }) {
		t.Error("expected panic for side-set without side-set bits")
	}
}

func checkProgram(t *testing.T, program, expectedProgram []uint16) {
	t.Helper()
	if len(program) != len(expectedProgram) {
		t.Fatalf("program length %d, expected %d", len(program), len(expectedProgram))
	}
	for i := range program {
		if program[i] != expectedProgram[i] {
			t.Errorf("instr %d mismatch got!=expected: %#x != %#x", i, program[i], expectedProgram[i])
		}
	}
}

func panics(f func()) (didPanic bool) {
	defer func() {
		didPanic = recover() != nil
	}()
	f()
	return false
}
