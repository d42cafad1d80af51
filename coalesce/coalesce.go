// Package coalesce merges the item changes of several list update transactions into the changes
// of one equivalent transaction.
//
// Within a transaction, changes follow the usual list update conventions:
//
//   - [Insert] addresses the snapshot after the transaction
//   - [Delete], [Move] and [Update] address the snapshot before the transaction
//
// A later transaction addresses the snapshot left behind by the previous one. The coalescer
// rewrites the paths of later transactions so that the result can be applied to the snapshot
// before the first transaction in one go.
package coalesce

import (
	"fmt"
	"strings"

	"znkr.io/ext/indexpath"
)

// Op is the operation of an item change.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Insert Op = iota
	Delete
	Move
	Update
)

// Change is a single item change. To is only set for [Move].
type Change struct {
	Op   Op
	Path indexpath.Path
	To   indexpath.Path
}

// Equal reports whether c and d describe the same change.
func (c Change) Equal(d Change) bool {
	if c.Op != d.Op || !c.Path.Equal(d.Path) {
		return false
	}
	return c.Op != Move || c.To.Equal(d.To)
}

func (c Change) String() string {
	op := strings.ToLower(c.Op.String())
	if c.Op == Move {
		return fmt.Sprintf("%s %v %v", op, c.Path, c.To)
	}
	return fmt.Sprintf("%s %v", op, c.Path)
}

// Timing determines when changes of different transactions are coalesced.
type Timing int

const (
	// AtPop coalesces all closed transactions when [Coalescer.Pop] is called.
	AtPop Timing = iota
	// AtRootEnd coalesces every time the outermost transaction ends.
	AtRootEnd
)

// Coalescer records changes in nested transactions. A transaction together with its nested
// transactions forms a single transaction.
//
// A Coalescer is not safe for concurrent use.
type Coalescer struct {
	timing Timing
	closed [][]Change
	open   []Change
	depth  int
}

// New returns an empty coalescer.
func New(timing Timing) *Coalescer {
	return &Coalescer{timing: timing}
}

// Begin opens a transaction. Transactions nest.
func (c *Coalescer) Begin() { c.depth++ }

// End closes the innermost open transaction. It panics without a matching Begin.
func (c *Coalescer) End() {
	if c.depth == 0 {
		panic("coalesce: End without Begin")
	}
	c.depth--
	if c.depth > 0 || len(c.open) == 0 {
		return
	}
	c.closed = append(c.closed, c.open)
	c.open = nil
	if c.timing == AtRootEnd {
		c.closed = [][]Change{c.coalesced()}
	}
}

// Empty reports whether there are no recorded changes.
func (c *Coalescer) Empty() bool { return len(c.closed) == 0 && len(c.open) == 0 }

// InTransaction reports whether a transaction is open.
func (c *Coalescer) InTransaction() bool { return c.depth > 0 }

func (c *Coalescer) PushInsert(p indexpath.Path)      { c.Push(Change{Op: Insert, Path: p}) }
func (c *Coalescer) PushDelete(p indexpath.Path)      { c.Push(Change{Op: Delete, Path: p}) }
func (c *Coalescer) PushUpdate(p indexpath.Path)      { c.Push(Change{Op: Update, Path: p}) }
func (c *Coalescer) PushMove(from, to indexpath.Path) { c.Push(Change{Op: Move, Path: from, To: to}) }

// Push records ch in the open transaction. Outside of a transaction, ch forms a transaction on its
// own.
func (c *Coalescer) Push(ch Change) {
	if c.depth == 0 {
		c.Begin()
		defer c.End()
	}
	for i := len(c.open) - 1; i >= 0; i-- {
		switch relate(c.open[i], ch) {
		case unrelated:
			continue
		case duplicate, overridden:
			return
		case overriding:
			c.open[i] = ch
			return
		}
	}
	c.open = append(c.open, ch)
}

// Pop returns the coalesced changes of all closed transactions and forgets them. It panics if a
// transaction is still open.
func (c *Coalescer) Pop() []Change {
	if c.depth != 0 {
		panic("coalesce: unbalanced Begin/End")
	}
	changes := c.coalesced()
	c.closed = nil
	return changes
}

type relation int

const (
	unrelated relation = iota
	// The pending change adds nothing.
	duplicate
	// The pending change replaces the recorded one.
	overriding
	// The recorded change already covers the pending one.
	overridden
)

// relate describes how the pending change p relates to the recorded change r of the same
// transaction.
func relate(r, p Change) relation {
	if !r.Path.Equal(p.Path) {
		return unrelated
	}
	switch {
	case r.Op == p.Op && r.Op != Move:
		return duplicate
	case r.Op == Delete && p.Op == Move, r.Op == Move && p.Op == Move, r.Op == Update && p.Op == Delete:
		return overriding
	case r.Op == Move && p.Op == Delete, r.Op == Delete && p.Op == Update:
		return overridden
	}
	return unrelated
}
