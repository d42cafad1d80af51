// Package indexpath implements paths of indices into nested lists, like "section 2, row 5".
package indexpath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path is a non-empty list of indices. The zero value is not a valid path; use [New] or [Parse].
//
// Paths are immutable: all methods that derive a new path return a copy.
type Path []int

// New returns a path with the given indices. It panics if no index is given.
func New(indices ...int) Path {
	if len(indices) == 0 {
		panic("indexpath: empty path")
	}
	return Path(slices.Clone(indices))
}

// Parse parses a path in the format returned by [Path.String].
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("indexpath: empty path")
	}
	var p Path
	for f := range strings.SplitSeq(s, ".") {
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("indexpath: invalid index %q in %q", f, s)
		}
		p = append(p, i)
	}
	return p, nil
}

func (p Path) Len() int          { return len(p) }
func (p Path) At(i int) int      { return p[i] }
func (p Path) Last() int         { return p[len(p)-1] }
func (p Path) Equal(q Path) bool { return slices.Equal(p, q) }

// Compare orders shorter paths before longer ones and paths of the same length
// lexicographically. It returns -1, 0 or +1.
func (p Path) Compare(q Path) int {
	if c := len(p) - len(q); c != 0 {
		if c < 0 {
			return -1
		}
		return +1
	}
	return slices.Compare(p, q)
}

// Successor returns the path with the last index incremented by one.
func (p Path) Successor() Path { return p.withLast(p.Last() + 1) }

// Predecessor returns the path with the last index decremented by one.
func (p Path) Predecessor() Path { return p.withLast(p.Last() - 1) }

func (p Path) withLast(last int) Path {
	q := slices.Clone(p)
	q[len(q)-1] = last
	return q
}

// Append returns the path with index i added at the end.
func (p Path) Append(i int) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, i)
}

// Parent returns the path without its last index. It reports false for paths of length one.
func (p Path) Parent() (Path, bool) {
	if len(p) <= 1 {
		return nil, false
	}
	return slices.Clone(p[:len(p)-1]), true
}

// Add returns the path advanced by iv. The shorter of the two is padded with zeros.
func (p Path) Add(iv Interval) Path {
	n := max(len(p), len(iv))
	q := make(Path, n)
	for i := range n {
		q[i] = at(p, i) + at(iv, i)
	}
	return q
}

// Distance returns the interval d such that p.Add(d) equals end, padding to the longer length.
func (p Path) Distance(end Path) Interval {
	n := max(len(p), len(end))
	d := make(Interval, n)
	for i := range n {
		d[i] = at(end, i) - at(p, i)
	}
	return d
}

func (p Path) String() string { return join(p) }

// Interval is the element wise difference between two paths.
type Interval []int

func (iv Interval) Len() int               { return len(iv) }
func (iv Interval) Equal(jv Interval) bool { return slices.Equal(iv, jv) }
func (iv Interval) String() string         { return join(iv) }

func at(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func join(s []int) string {
	var sb strings.Builder
	for i, v := range s {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
