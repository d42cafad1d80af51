package seq

import "slices"

// Unique returns the elements of s without duplicates, keeping the first occurrence.
func Unique[S ~[]E, E comparable](s S) S {
	kept, _ := Dedupe(s)
	return kept
}

func UniqueFunc[S ~[]E, E any](s S, eq func(x, y E) bool) S {
	kept, _ := DedupeFunc(s, eq)
	return kept
}

// Dedupe splits s into the first occurrences of its elements and the remaining duplicates.
func Dedupe[S ~[]E, E comparable](s S) (kept, duplicates S) {
	seen := make(map[E]bool, len(s))
	for _, e := range s {
		if seen[e] {
			duplicates = append(duplicates, e)
			continue
		}
		seen[e] = true
		kept = append(kept, e)
	}
	return kept, duplicates
}

// DedupeFunc is like [Dedupe] but uses eq to compare elements.
func DedupeFunc[S ~[]E, E any](s S, eq func(x, y E) bool) (kept, duplicates S) {
	for _, e := range s {
		if slices.ContainsFunc(kept, func(k E) bool { return eq(k, e) }) {
			duplicates = append(duplicates, e)
			continue
		}
		kept = append(kept, e)
	}
	return kept, duplicates
}

// RemoveIndices returns s without the elements at indices and the removed elements in index
// order. Repeated indices are removed once. It panics if an index is out of range.
func RemoveIndices[S ~[]E, E any](s S, indices ...int) (rest, removed S) {
	drop := make([]bool, len(s))
	for _, i := range indices {
		drop[i] = true
	}
	for i, e := range s {
		if drop[i] {
			removed = append(removed, e)
		} else {
			rest = append(rest, e)
		}
	}
	return rest, removed
}

// Remove returns s without the first occurrence of each of values, and the removed elements in
// the order they appeared in s. A value that appears n times in values removes up to n
// occurrences.
func Remove[S ~[]E, E comparable](s S, values ...E) (rest, removed S) {
	drop := make(map[int]bool, len(values))
	for _, v := range values {
		for i, e := range s {
			if e == v && !drop[i] {
				drop[i] = true
				break
			}
		}
	}
	var indices []int
	for i := range drop {
		indices = append(indices, i)
	}
	return RemoveIndices(s, indices...)
}
