package bitmask

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBits(t *testing.T) {
	tests := []struct {
		name string
		mask uint8
		opts Options
		want []uint8
	}{
		{
			name: "zero",
			mask: 0,
			opts: Set | Unset,
			want: nil,
		},
		{
			name: "default-is-set",
			mask: 0b1011,
			want: []uint8{1, 2, 8},
		},
		{
			name: "set",
			mask: 0b1011,
			opts: Set,
			want: []uint8{1, 2, 8},
		},
		{
			name: "unset",
			mask: 0b1011,
			opts: Unset,
			want: []uint8{4},
		},
		{
			name: "all-positions",
			mask: 0b1010,
			opts: Set | Unset,
			want: []uint8{1, 2, 4, 8},
		},
		{
			name: "reverse",
			mask: 0b1011,
			opts: Set | Reverse,
			want: []uint8{8, 2, 1},
		},
		{
			name: "high-bit",
			mask: 0x80,
			opts: Set,
			want: []uint8{0x80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Bits(tt.mask, tt.opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Bits() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBitsStop(t *testing.T) {
	var got []uint16
	for b := range Bits(uint16(0xffff), Set) {
		if b > 4 {
			break
		}
		got = append(got, b)
	}
	if diff := cmp.Diff([]uint16{1, 2, 4}, got); diff != "" {
		t.Errorf("Bits() mismatch (-want +got):\n%s", diff)
	}
}

type flags uint32

func TestQueries(t *testing.T) {
	const (
		a flags = 1 << iota
		b
		c
	)
	m := a | c
	if !Has(m, a|c) {
		t.Errorf("Has(%b, %b) = false", m, a|c)
	}
	if Has(m, a|b) {
		t.Errorf("Has(%b, %b) = true", m, a|b)
	}
	if !Any(m, b|c) {
		t.Errorf("Any(%b, %b) = false", m, b|c)
	}
	if Any(m, b) {
		t.Errorf("Any(%b, %b) = true", m, b)
	}
	if got := Count(m); got != 2 {
		t.Errorf("Count(%b) = %d, want 2", m, got)
	}
}
