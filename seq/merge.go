package seq

import (
	"cmp"
	"slices"
)

// Merge returns a copy of a with the elements of b appended that are not in a.
func Merge[S ~[]E, E comparable](a, b S) S {
	return MergeFunc(a, b, func(x, y E) bool { return x == y })
}

// MergeFunc is like [Merge] but uses eq to compare elements.
func MergeFunc[S ~[]E, E any](a, b S, eq func(x, y E) bool) S {
	merged := slices.Clone(a)
	for _, e := range b {
		if !slices.ContainsFunc(merged, func(m E) bool { return eq(e, m) }) {
			merged = append(merged, e)
		}
	}
	return merged
}

// MergeSorted sorts copies of a and b and merges them. When the heads of both are equal, only
// one of them is kept.
func MergeSorted[S ~[]E, E cmp.Ordered](a, b S) S {
	return MergeSortedFunc(a, b, cmp.Compare[E])
}

// MergeSortedFunc is like [MergeSorted] but uses compare to order and compare elements.
func MergeSortedFunc[S ~[]E, E any](a, b S, compare func(x, y E) int) S {
	x := slices.SortedStableFunc(slices.Values(a), compare)
	y := slices.SortedStableFunc(slices.Values(b), compare)
	merged := make(S, 0, len(x)+len(y))
	for len(x) > 0 && len(y) > 0 {
		switch c := compare(x[0], y[0]); {
		case c == 0:
			merged = append(merged, x[0])
			x, y = x[1:], y[1:]
		case c < 0:
			merged = append(merged, x[0])
			x = x[1:]
		default:
			merged = append(merged, y[0])
			y = y[1:]
		}
	}
	merged = append(merged, x...)
	return append(merged, y...)
}

// Intersects reports whether a and b have at least one element in common.
func Intersects[S ~[]E, E comparable](a, b S) bool {
	return IntersectsFunc(a, b, func(x, y E) bool { return x == y })
}

// IntersectsFunc is like [Intersects] but uses eq to compare elements.
func IntersectsFunc[S ~[]E, E any](a, b S, eq func(x, y E) bool) bool {
	for _, y := range b {
		for _, x := range a {
			if eq(x, y) {
				return true
			}
		}
	}
	return false
}
