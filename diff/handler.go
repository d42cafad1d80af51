package diff

import (
	"strings"

	"znkr.io/ext/bitmask"
)

// kind identifies the registration method a handler was created with.
type kind uint8

const (
	insertion kind = 1 << iota
	deletion
	moving
	movingWithChange
	stationary
	stationaryWithChange
	contentChange
	changes
)

var kindNames = map[kind]string{
	insertion:            "insertion",
	deletion:             "deletion",
	moving:               "moving",
	movingWithChange:     "moving-with-content-change",
	stationary:           "stationary",
	stationaryWithChange: "stationary-with-content-change",
	contentChange:        "content-change",
	changes:              "changes",
}

func (k kind) String() string {
	var names []string
	for bit := range bitmask.Bits(k, bitmask.Set) {
		names = append(names, kindNames[bit])
	}
	return strings.Join(names, ", ")
}

// Handler kinds that can't be registered on the same differ.
var conflicts = map[kind]kind{
	stationary:           stationaryWithChange,
	stationaryWithChange: stationary | contentChange,
	moving:               movingWithChange,
	movingWithChange:     moving | contentChange,
	contentChange:        stationaryWithChange | movingWithChange,
}

// Result describes the outcome for a single element, or a pair of corresponding elements.
//
//   - For Inserted, ToPos and To are set and FromPos is -1.
//   - For Deleted, FromPos and From are set and ToPos is -1.
//   - For Stationary and Moved both sides are set. ContentCompared reports whether the content
//     comparator was consulted, in which case ContentChanged holds its negated verdict.
type Result[T any] struct {
	Category        Category
	FromPos         int
	From            T
	ToPos           int
	To              T
	ContentCompared bool
	ContentChanged  bool
}

// HasFrom reports whether the result refers to an element of the "from" sequence.
func (r *Result[T]) HasFrom() bool { return r.FromPos >= 0 }

// HasTo reports whether the result refers to an element of the "to" sequence.
func (r *Result[T]) HasTo() bool { return r.ToPos >= 0 }

type handler[T any] struct {
	kind kind
	// Categories the handler was registered for. For all kinds except changes, the handler fires
	// when trigger is part of a result's category.
	category Category
	trigger  Category
	fn       func(r *Result[T])
}

func (h *handler[T]) handle(r *Result[T]) {
	if h.kind != changes {
		if r.Category.Has(h.trigger) {
			h.fn(r)
		}
		return
	}
	matched := r.Category & h.category
	if matched == 0 {
		return
	}
	rr := *r
	rr.Category = matched
	h.fn(&rr)
}
