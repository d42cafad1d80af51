package diff

// record wraps an element for the duration of a single diff run.
type record[T any] struct {
	pos     int
	value   T
	visited bool
}

func wrap[T any](s []T) []record[T] {
	rs := make([]record[T], len(s))
	for i, v := range s {
		rs[i] = record[T]{pos: i, value: v}
	}
	return rs
}

// firstUnvisited returns the first record that wasn't visited yet and is identical to v, or nil.
// There is no search for a better match later in the slice.
func firstUnvisited[T any](rs []record[T], v T, identical func(a, b T) bool) *record[T] {
	for i := range rs {
		if !rs[i].visited && identical(rs[i].value, v) {
			return &rs[i]
		}
	}
	return nil
}
