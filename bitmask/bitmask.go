// Package bitmask provides helpers for iterating and querying flag sets stored in unsigned
// integer types.
package bitmask

import (
	"iter"
	"math/bits"
)

// Unsigned is the constraint for types that can be used as bit masks.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Options control how [Bits] traverses a mask.
type Options uint8

const (
	Set     Options = 1 << iota // Yield bits that are set in the mask
	Unset                       // Yield bits that are not set, up to the highest set bit
	Reverse                     // Yield the highest bit first
)

// Bits returns an iterator over the single bit values of mask. Only positions up to and including
// the highest set bit are visited; a zero mask yields nothing. If opts contains neither [Set] nor
// [Unset], [Set] is assumed.
func Bits[B Unsigned](mask B, opts Options) iter.Seq[B] {
	if opts&(Set|Unset) == 0 {
		opts |= Set
	}
	return func(yield func(B) bool) {
		n := bits.Len64(uint64(mask))
		for i := range n {
			pos := i
			if opts&Reverse != 0 {
				pos = n - 1 - i
			}
			bit := B(1) << pos
			set := mask&bit != 0
			if set && opts&Set == 0 || !set && opts&Unset == 0 {
				continue
			}
			if !yield(bit) {
				return
			}
		}
	}
}

// Has reports whether all bits of want are set in mask.
func Has[B Unsigned](mask, want B) bool { return mask&want == want }

// Any reports whether mask and other share at least one bit.
func Any[B Unsigned](mask, other B) bool { return mask&other != 0 }

// Count returns the number of set bits in mask.
func Count[B Unsigned](mask B) int { return bits.OnesCount64(uint64(mask)) }
