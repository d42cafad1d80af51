// Package diff classifies the elements of two ordered sequences as stationary, inserted, deleted,
// moved or changed and reports them to registered handlers.
//
// A [Differ] is created for a "from" sequence, configured with handlers for the categories of
// interest and then run against a "to" sequence:
//
//	diff.From(old).
//		OnInsertion(func(pos int, v string) { ... }).
//		OnDeletion(func(pos int, v string) { ... }).
//		OnMoving(func(fromPos int, from string, toPos int, to string) { ... }).
//		To(new)
//
// Correspondences between the two sequences are found with an identity comparator. Every element
// of "to" is matched with the first element of "from" that is identical and not matched yet;
// there is no search for an optimal assignment. A separate content comparator decides whether
// two corresponding elements carry the same payload, which allows to detect in-place changes of
// elements that keep their identity.
//
// Misconfiguration, like registering handlers for an illegal category combination or registering
// conflicting handlers, panics with a [*ConfigError] at registration time.
package diff

// Implementation note: The matching is quadratic in the worst case. Every "to" element scans the
// "from" records for the first unvisited identical one. For duplicates, the k-th occurrence in
// "to" corresponds to the k-th occurrence in "from".

// Differ compares a "from" sequence against "to" sequences and dispatches the results to the
// registered handlers. A Differ can be run multiple times, but it must not be used concurrently.
type Differ[T any] struct {
	from     []T
	identity func(a, b T) bool
	content  func(a, b T) bool // nil means identity is used

	handlers  []handler[T]
	kinds     kind
	inspected Category
}

// From creates a differ for from that uses == as identity and content comparator.
func From[T comparable](from []T) *Differ[T] {
	eq := func(a, b T) bool { return a == b }
	return &Differ[T]{
		from:     from,
		identity: eq,
		content:  eq,
	}
}

// FromFunc creates a differ for from that uses identity to find corresponding elements. Unless
// [Differ.WithContent] is used, identity is also used to compare content, i.e. no element is ever
// reported as changed.
func FromFunc[T any](from []T, identity func(a, b T) bool) *Differ[T] {
	if identity == nil {
		panic(&ConfigError{Msg: "identity comparator must not be nil"})
	}
	return &Differ[T]{
		from:     from,
		identity: identity,
	}
}

// WithIdentity replaces the identity comparator.
func (d *Differ[T]) WithIdentity(identity func(a, b T) bool) *Differ[T] {
	if identity == nil {
		panic(&ConfigError{Msg: "identity comparator must not be nil"})
	}
	d.identity = identity
	return d
}

// WithContent replaces the content comparator. A nil comparator falls back to the identity
// comparator.
func (d *Differ[T]) WithContent(content func(a, b T) bool) *Differ[T] {
	d.content = content
	return d
}

// From returns the "from" sequence.
func (d *Differ[T]) From() []T { return d.from }

// Len returns the length of the "from" sequence.
func (d *Differ[T]) Len() int { return len(d.from) }

// Inspected returns the union of all categories handlers are registered for.
func (d *Differ[T]) Inspected() Category { return d.inspected }

// OnInsertion registers a handler for elements that only exist in the "to" sequence.
func (d *Differ[T]) OnInsertion(fn func(toPos int, to T)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(insertion, Inserted, Inserted, func(r *Result[T]) { fn(r.ToPos, r.To) })
}

// OnDeletion registers a handler for elements that only exist in the "from" sequence.
func (d *Differ[T]) OnDeletion(fn func(fromPos int, from T)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(deletion, Deleted, Deleted, func(r *Result[T]) { fn(r.FromPos, r.From) })
}

// OnMoving registers a handler for corresponding elements at different positions.
func (d *Differ[T]) OnMoving(fn func(fromPos int, from T, toPos int, to T)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(moving, Moved, Moved, func(r *Result[T]) {
		fn(r.FromPos, r.From, r.ToPos, r.To)
	})
}

// OnMovingWithContentChange registers a handler for corresponding elements at different
// positions that also receives whether the content changed. It conflicts with [Differ.OnMoving]
// and [Differ.OnContentChange].
func (d *Differ[T]) OnMovingWithContentChange(fn func(fromPos int, from T, toPos int, to T, changed bool)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(movingWithChange, Moved|Changed, Moved, func(r *Result[T]) {
		fn(r.FromPos, r.From, r.ToPos, r.To, r.ContentChanged)
	})
}

// OnStationary registers a handler for corresponding elements at the same position. The handler
// receives the element from the "from" sequence.
func (d *Differ[T]) OnStationary(fn func(pos int, elem T)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(stationary, Stationary, Stationary, func(r *Result[T]) {
		fn(r.FromPos, r.From)
	})
}

// OnStationaryWithContentChange registers a handler for corresponding elements at the same
// position that also receives whether the content changed. It conflicts with
// [Differ.OnStationary] and [Differ.OnContentChange].
func (d *Differ[T]) OnStationaryWithContentChange(fn func(pos int, elem T, changed bool)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(stationaryWithChange, Stationary|Changed, Stationary, func(r *Result[T]) {
		fn(r.FromPos, r.From, r.ContentChanged)
	})
}

// OnContentChange registers a handler for corresponding elements whose content changed,
// regardless of their position.
func (d *Differ[T]) OnContentChange(fn func(fromPos int, from T, toPos int, to T)) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(contentChange, Changed, Changed, func(r *Result[T]) {
		fn(r.FromPos, r.From, r.ToPos, r.To)
	})
}

// OnChanges registers a handler for any of the given categories, which must be a valid
// combination. The handler receives every result that falls into at least one of these
// categories, with the result's category narrowed down to the requested ones.
func (d *Differ[T]) OnChanges(categories Category, fn func(r Result[T])) *Differ[T] {
	if fn == nil {
		panicNilHandler()
	}
	return d.register(changes, categories, 0, func(r *Result[T]) { fn(*r) })
}

func panicNilHandler() {
	panic(&ConfigError{Msg: "handler must not be nil"})
}

func (d *Differ[T]) register(k kind, c, trigger Category, fn func(r *Result[T])) *Differ[T] {
	if !c.Valid() {
		panic(&ConfigError{Category: c, Msg: "invalid category combination"})
	}
	if other := d.kinds & conflicts[k]; other != 0 {
		panic(&ConfigError{Category: c, Msg: k.String() + " handler conflicts with " + other.String() + " handler"})
	}
	d.kinds |= k
	d.inspected |= c
	d.handlers = append(d.handlers, handler[T]{
		kind:     k,
		category: c,
		trigger:  trigger,
		fn:       fn,
	})
	return d
}

// To diffs the "from" sequence against to and calls the registered handlers synchronously.
// Results of the forward pass over to are delivered first, in the order of to, followed by the
// deletions in the order of from. Nothing happens if no handler is registered or both sequences
// are empty.
func (d *Differ[T]) To(to []T) {
	if d.inspected == 0 || len(d.from) == 0 && len(to) == 0 {
		return
	}

	content := d.content
	if content == nil {
		content = d.identity
	}
	compareContent := d.inspected.Has(Changed)

	from, tos := wrap(d.from), wrap(to)
	for i := range tos {
		t := &tos[i]
		f := firstUnvisited(from, t.value, d.identity)
		if f == nil {
			d.dispatch(&Result[T]{
				Category: Inserted,
				FromPos:  -1,
				ToPos:    t.pos,
				To:       t.value,
			})
			continue
		}
		f.visited = true
		t.visited = true

		r := Result[T]{
			Category: Moved,
			FromPos:  f.pos,
			From:     f.value,
			ToPos:    t.pos,
			To:       t.value,
		}
		if f.pos == t.pos {
			r.Category = Stationary
		}
		if compareContent {
			r.ContentCompared = true
			r.ContentChanged = !content(f.value, t.value)
			if r.ContentChanged {
				r.Category |= Changed
			}
		}
		d.dispatch(&r)
	}

	for i := range from {
		f := &from[i]
		if f.visited {
			continue
		}
		f.visited = true
		d.dispatch(&Result[T]{
			Category: Deleted,
			FromPos:  f.pos,
			From:     f.value,
			ToPos:    -1,
		})
	}
}

func (d *Differ[T]) dispatch(r *Result[T]) {
	for i := range d.handlers {
		d.handlers[i].handle(r)
	}
}

// Collect diffs from against to and returns all results in dispatch order. A nil content
// comparator falls back to identity.
func Collect[T any](from, to []T, identity, content func(a, b T) bool) []Result[T] {
	var rs []Result[T]
	FromFunc(from, identity).
		WithContent(content).
		OnChanges(All, func(r Result[T]) { rs = append(rs, r) }).
		To(to)
	return rs
}
