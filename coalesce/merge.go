package coalesce

import (
	"slices"

	"znkr.io/ext/indexpath"
)

// coalesced merges the closed transactions into one.
func (c *Coalescer) coalesced() []Change {
	switch len(c.closed) {
	case 0:
		return nil
	case 1:
		return c.closed[0]
	}
	acc := slices.Clone(c.closed[0])
	for _, tx := range c.closed[1:] {
		acc = merge(acc, tx)
	}
	return acc
}

// merge appends the changes of tx to acc, the coalesced changes of all preceding transactions.
//
// acc takes the list from snapshot S0 to S1 and tx takes it from S1 to S2. Insertions and move
// destinations in acc address S1, they are shifted to address S2. Everything else in tx that
// addresses S1 is mapped back to S0.
func merge(acc, tx []Change) []Change {
	m := newMapping(acc)
	gone := make([]bool, len(acc))
	relocated := make(map[int]indexpath.Path)
	live := func(match func(Change) bool) int {
		for i, ch := range acc {
			if !gone[i] && match(ch) {
				return i
			}
		}
		return -1
	}
	insertedAt := func(p indexpath.Path) int {
		return live(func(ch Change) bool { return ch.Op == Insert && ch.Path.Equal(p) })
	}
	movedTo := func(p indexpath.Path) int {
		return live(func(ch Change) bool { return ch.Op == Move && ch.To.Equal(p) })
	}

	var added []Change
	for _, ch := range tx {
		switch ch.Op {
		case Insert:
			added = append(added, ch)
		case Delete:
			if i := insertedAt(ch.Path); i >= 0 {
				gone[i] = true
			} else if i := movedTo(ch.Path); i >= 0 {
				acc[i] = Change{Op: Delete, Path: acc[i].Path}
			} else {
				added = append(added, Change{Op: Delete, Path: m.before(ch.Path)})
			}
		case Update:
			if insertedAt(ch.Path) >= 0 {
				continue
			}
			p := m.before(ch.Path)
			if i := movedTo(ch.Path); i >= 0 {
				p = acc[i].Path
			}
			if live(func(ch Change) bool { return ch.Op == Update && ch.Path.Equal(p) }) < 0 {
				added = append(added, Change{Op: Update, Path: p})
			}
		case Move:
			if i := insertedAt(ch.Path); i >= 0 {
				relocated[i] = ch.To
			} else if i := movedTo(ch.Path); i >= 0 {
				relocated[i] = ch.To
			} else {
				added = append(added, Change{Op: Move, Path: m.before(ch.Path), To: ch.To})
			}
		}
	}

	var removed, inserted []indexpath.Path
	for _, ch := range tx {
		if p := source(ch); p != nil {
			removed = append(removed, p)
		}
		if p := target(ch); p != nil {
			inserted = append(inserted, p)
		}
	}
	slices.SortFunc(inserted, indexpath.Path.Compare)

	merged := make([]Change, 0, len(acc)+len(added))
	for i, ch := range acc {
		if gone[i] {
			continue
		}
		if p := target(ch); p != nil {
			if to, ok := relocated[i]; ok {
				p = to
			} else {
				p = after(p, removed, inserted)
			}
			if ch.Op == Move {
				ch.To = p
			} else {
				ch.Path = p
			}
		}
		merged = append(merged, ch)
	}
	return append(merged, added...)
}

// mapping translates paths of S1 into paths of S0 for a coalesced transaction from S0 to S1.
type mapping struct {
	targets []indexpath.Path // paths in S1 that did not exist in S0
	sources []indexpath.Path // paths in S0 that do not exist in S1
}

func newMapping(acc []Change) mapping {
	var m mapping
	for _, ch := range acc {
		if p := target(ch); p != nil {
			m.targets = append(m.targets, p)
		}
		if p := source(ch); p != nil {
			m.sources = append(m.sources, p)
		}
	}
	slices.SortFunc(m.sources, indexpath.Path.Compare)
	return m
}

// before maps p, a path in S1 of an element that already existed in S0, to its path in S0.
func (m mapping) before(p indexpath.Path) indexpath.Path {
	i := p.Last()
	for _, t := range m.targets {
		if siblings(t, p) && t.Last() < p.Last() {
			i--
		}
	}
	for _, s := range m.sources {
		if siblings(s, p) && s.Last() <= i {
			i++
		}
	}
	return withLast(p, i)
}

// after maps p through the removal of removed and the insertion of inserted. inserted must be
// sorted.
func after(p indexpath.Path, removed, inserted []indexpath.Path) indexpath.Path {
	i := p.Last()
	for _, r := range removed {
		if siblings(r, p) && r.Last() < p.Last() {
			i--
		}
	}
	for _, t := range inserted {
		if siblings(t, p) && t.Last() <= i {
			i++
		}
	}
	return withLast(p, i)
}

// source returns the path a change removes an element from, if any.
func source(ch Change) indexpath.Path {
	if ch.Op == Delete || ch.Op == Move {
		return ch.Path
	}
	return nil
}

// target returns the path a change places an element at, if any.
func target(ch Change) indexpath.Path {
	switch ch.Op {
	case Insert:
		return ch.Path
	case Move:
		return ch.To
	}
	return nil
}

// siblings reports whether a and b address elements of the same list.
func siblings(a, b indexpath.Path) bool {
	return a.Len() == b.Len() && slices.Equal(a[:a.Len()-1], b[:b.Len()-1])
}

func withLast(p indexpath.Path, i int) indexpath.Path {
	if parent, ok := p.Parent(); ok {
		return parent.Append(i)
	}
	return indexpath.New(i)
}
