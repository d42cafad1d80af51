// Package edit computes minimal edit scripts between two slices of an arbitrary type with an
// arbitrary equality operator.
package edit

// The search is Myers' O(ND) algorithm, see "An O(ND) Difference Algorithm and Its Variations"
// (Myers, 1986). A readable walk through is at
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/.

import (
	"fmt"
	"slices"
)

const checkInvariants = false

// Op is the kind of an [Edit].
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // element present in both slices
	Delete           // element only present in x
	Insert           // element only present in y
)

// Edit is one step of an edit script. X holds the element of the left slice for Match and
// Delete, Y holds the element of the right slice for Match and Insert. The unused side is the
// zero value.
type Edit[T any] struct {
	Op   Op
	X, Y T
}

// Edits diffs x and y, comparing elements with ==.
func Edits[T comparable](x, y []T) []Edit[T] {
	return EditsFunc(x, y, func(a, b T) bool { return a == b })
}

// EditsFunc diffs x and y, comparing elements with eq. Applying the returned script to x yields y;
// every element of x and y appears in exactly one edit.
func EditsFunc[T any](x, y []T, eq func(a, b T) bool) []Edit[T] {
	var zero T
	edits := make([]Edit[T], 0, max(len(x), len(y)))
	pre := commonPrefix(x, y, eq)
	for i := range pre {
		edits = append(edits, Edit[T]{Match, x[i], y[i]})
	}
	x, y = x[pre:], y[pre:]

	// The middle part is what's left between the common prefix and suffix.
	suf := commonSuffix(x, y, eq)
	mx, my := x[:len(x)-suf], y[:len(y)-suf]

	switch {
	case len(mx) == 0:
		for _, v := range my {
			edits = append(edits, Edit[T]{Insert, zero, v})
		}
	case len(my) == 0:
		for _, v := range mx {
			edits = append(edits, Edit[T]{Delete, v, zero})
		}
	default:
		edits = backtrack(edits, mx, my, explore(mx, my, eq))
	}

	for i := range suf {
		edits = append(edits, Edit[T]{Match, x[len(mx)+i], y[len(my)+i]})
	}
	return edits
}

// Lines diffs two slices of lines and shifts groups of insertions and deletions to positions
// that are easier to read, using the indentation of the surrounding lines.
func Lines(x, y []string) []Edit[string] {
	return slide(Edits(x, y))
}

// Count returns the number of matches, deletions and insertions in edits.
func Count[T any](edits []Edit[T]) (matches, deletions, insertions int) {
	for _, e := range edits {
		switch e.Op {
		case Match:
			matches++
		case Delete:
			deletions++
		case Insert:
			insertions++
		}
	}
	return matches, deletions, insertions
}

func commonPrefix[T any](x, y []T, eq func(a, b T) bool) int {
	n := 0
	for n < len(x) && n < len(y) && eq(x[n], y[n]) {
		n++
	}
	return n
}

func commonSuffix[T any](x, y []T, eq func(a, b T) bool) int {
	n := 0
	for n < len(x) && n < len(y) && eq(x[len(x)-1-n], y[len(y)-1-n]) {
		n++
	}
	return n
}

// frontier records, for every depth d and diagonal k, the furthest x offset a path with d
// non-diagonal steps reaches on diagonal k. Depth d has d+1 diagonals, so they are packed into
// one triangular slice.
type frontier struct {
	v     []int
	depth int
}

func (f *frontier) grow(d int) {
	n := (d + 1) * (d + 2) / 2
	f.v = slices.Grow(f.v, n-len(f.v))[:n]
	f.depth = d
}

func (f *frontier) at(d, k int) int     { return f.v[f.offset(d, k)] }
func (f *frontier) put(d, k int, s int) { f.v[f.offset(d, k)] = s }

func (f *frontier) offset(d, k int) int {
	if checkInvariants {
		switch {
		case d < 0 || d > f.depth:
			panic(fmt.Sprintf("depth %d out of range [0, %d]", d, f.depth))
		case k < -d || k > d:
			panic(fmt.Sprintf("diagonal %d out of range [%d, %d]", k, -d, d))
		case (k+d)%2 != 0:
			panic(fmt.Sprintf("depth %d and diagonal %d differ in parity", d, k))
		}
	}
	return d*(d+1)/2 + (k+d)/2
}

// down reports whether the best path to diagonal k at depth d comes from diagonal k+1, i.e.
// its last non-diagonal step is an insertion.
func (f *frontier) down(d, k int) bool {
	return k == -d || (k != d && f.at(d-1, k-1) < f.at(d-1, k+1))
}

// explore runs the forward search until both slices are exhausted.
func explore[T any](x, y []T, eq func(a, b T) bool) frontier {
	f := frontier{depth: -1}
	for d := 0; d <= len(x)+len(y); d++ {
		f.grow(d)
		for k := -d; k <= d; k += 2 {
			var s int
			switch {
			case d == 0:
			case f.down(d, k):
				s = f.at(d-1, k+1)
			default:
				s = f.at(d-1, k-1) + 1
			}
			t := s - k
			if s < len(x) && t < len(y) {
				n := commonPrefix(x[s:], y[t:], eq)
				s, t = s+n, t+n
			}
			f.put(d, k, s)
			if s >= len(x) && t >= len(y) {
				return f
			}
		}
	}
	panic("unreachable")
}

// backtrack walks f from the end back to the origin and appends the edits along the way to
// edits.
func backtrack[T any](edits []Edit[T], x, y []T, f frontier) []Edit[T] {
	var zero T
	start := len(edits)
	s, t := len(x), len(y)
	for d := f.depth; ; d-- {
		k := s - t
		var ps, pk int
		if d > 0 {
			pk = k - 1
			if f.down(d, k) {
				pk = k + 1
			}
			ps = f.at(d-1, pk)
		}
		pt := ps - pk

		for s > ps && t > pt {
			s, t = s-1, t-1
			edits = append(edits, Edit[T]{Match, x[s], y[t]})
		}
		if d == 0 {
			break
		}
		if s == ps {
			edits = append(edits, Edit[T]{Insert, zero, y[pt]})
		} else {
			edits = append(edits, Edit[T]{Delete, x[ps], zero})
		}
		s, t = ps, pt
	}
	slices.Reverse(edits[start:])
	return edits
}
