package coalesce

import (
	"znkr.io/ext/diff"
	"znkr.io/ext/indexpath"
)

// PushDiff diffs from against to and records the result as one transaction. Elements are
// addressed as section.Append(i), or as single index paths if section is nil. Elements whose
// content changed are recorded as updates. A nil content comparator records no updates.
func PushDiff[T any](c *Coalescer, section indexpath.Path, from, to []T, identity, content func(a, b T) bool) {
	path := func(i int) indexpath.Path {
		if section == nil {
			return indexpath.New(i)
		}
		return section.Append(i)
	}

	c.Begin()
	defer c.End()
	diff.FromFunc(from, identity).WithContent(content).OnChanges(diff.All, func(r diff.Result[T]) {
		switch {
		case r.Category.Has(diff.Inserted):
			c.PushInsert(path(r.ToPos))
		case r.Category.Has(diff.Deleted):
			c.PushDelete(path(r.FromPos))
		case r.Category.Has(diff.Moved):
			c.PushMove(path(r.FromPos), path(r.ToPos))
		}
		if r.Category.Has(diff.Changed) {
			c.PushUpdate(path(r.FromPos))
		}
	}).To(to)
}
