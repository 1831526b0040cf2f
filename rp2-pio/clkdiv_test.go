package pio

import (
	"errors"
	"testing"
)

func TestClkDivFromFrequency(t *testing.T) {
	const bitFreq = 800_000 * 10
	for _, tc := range []struct {
		freq, cpuFreq uint32
		want          ClkDiv
		wantErr       bool
	}{
		{freq: bitFreq, cpuFreq: 125_000_000, want: ClkDiv{Int: 15, Frac: 160}},
		{freq: bitFreq, cpuFreq: 133_000_000, want: ClkDiv{Int: 16, Frac: 160}},
		{freq: bitFreq, cpuFreq: 150_000_000, want: ClkDiv{Int: 18, Frac: 192}},
		{freq: bitFreq, cpuFreq: 48_000_000, want: ClkDiv{Int: 6}},
		{freq: bitFreq, cpuFreq: bitFreq, want: ClkDiv{Int: 1}},
		{freq: bitFreq, cpuFreq: bitFreq + 1, want: ClkDiv{Int: 1}},
		{freq: bitFreq, cpuFreq: bitFreq - 1, wantErr: true},
		{freq: bitFreq, cpuFreq: 0, wantErr: true},
		// 65536 boundary, encoded as 0.
		{freq: 1000, cpuFreq: 65_536_000, want: ClkDiv{Int: 0}},
		{freq: 1000, cpuFreq: 65_536_003, want: ClkDiv{Int: 0}},
		{freq: 1000, cpuFreq: 65_536_004, wantErr: true},
		{freq: 1000, cpuFreq: 65_537_000, wantErr: true},
		{freq: 1000, cpuFreq: 65_535_999, want: ClkDiv{Int: 65535, Frac: 255}},
		{freq: 0, cpuFreq: 125_000_000, wantErr: true},
	} {
		got, err := ClkDivFromFrequency(tc.freq, tc.cpuFreq)
		if tc.wantErr {
			if !errors.Is(err, ErrClkDivRange) {
				t.Errorf("ClkDivFromFrequency(%d, %d): got %v, %v; want ErrClkDivRange", tc.freq, tc.cpuFreq, got, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ClkDivFromFrequency(%d, %d): %v", tc.freq, tc.cpuFreq, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ClkDivFromFrequency(%d, %d) = %v, want %v", tc.freq, tc.cpuFreq, got, tc.want)
		}
	}
}

func TestClkDivDivisor256(t *testing.T) {
	for _, tc := range []struct {
		div  ClkDiv
		want uint32
		str  string
	}{
		{div: ClkDiv{Int: 15, Frac: 160}, want: 4000, str: "15+160/256"},
		{div: ClkDiv{Int: 1}, want: 256, str: "1+0/256"},
		{div: ClkDiv{}, want: 65536 * 256, str: "65536+0/256"},
	} {
		if got := tc.div.Divisor256(); got != tc.want {
			t.Errorf("%v.Divisor256() = %d, want %d", tc.div, got, tc.want)
		}
		if got := tc.div.String(); got != tc.str {
			t.Errorf("String() = %q, want %q", got, tc.str)
		}
	}
}
