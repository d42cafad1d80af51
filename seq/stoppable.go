// Package seq provides slice helpers that complement the standard slices package.
package seq

// MapUntil returns the results of f for the elements of s, up to and including the first element
// for which f reports stop.
func MapUntil[S ~[]E, E, T any](s S, f func(e E) (v T, stop bool)) []T {
	var mapped []T
	for _, e := range s {
		v, stop := f(e)
		mapped = append(mapped, v)
		if stop {
			break
		}
	}
	return mapped
}

// FlatMapUntil is like [MapUntil] but drops results for which f reports !ok.
func FlatMapUntil[S ~[]E, E, T any](s S, f func(e E) (v T, ok, stop bool)) []T {
	var mapped []T
	for _, e := range s {
		v, ok, stop := f(e)
		if ok {
			mapped = append(mapped, v)
		}
		if stop {
			break
		}
	}
	return mapped
}

// FlatMap returns the results of f for the elements of s for which f reports ok.
func FlatMap[S ~[]E, E, T any](s S, f func(e E) (v T, ok bool)) []T {
	var mapped []T
	for _, e := range s {
		if v, ok := f(e); ok {
			mapped = append(mapped, v)
		}
	}
	return mapped
}

// ReduceUntil combines the elements of s into acc, starting with init, up to and including the
// first element for which f reports stop.
func ReduceUntil[S ~[]E, E, T any](s S, init T, f func(acc T, e E) (T, bool)) T {
	acc := init
	for _, e := range s {
		var stop bool
		acc, stop = f(acc, e)
		if stop {
			break
		}
	}
	return acc
}
