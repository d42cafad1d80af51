package diff

import (
	"fmt"
	"slices"
	"strings"

	"znkr.io/ext/bitmask"
)

// Category classifies how an element changed between two sequences. Categories are flags and
// some of them can be combined, see [Category.Valid].
type Category uint8

const (
	Stationary Category = 1 << iota // Element is present in both sequences at the same position
	Inserted                        // Element is only present in the "to" sequence
	Deleted                         // Element is only present in the "from" sequence
	Moved                           // Element is present in both sequences at different positions
	Changed                         // Element content differs according to the content comparator

	All = Stationary | Inserted | Deleted | Moved | Changed
)

// The only category combinations a handler may be registered for.
var validCategories = []Category{
	Stationary,
	Inserted,
	Deleted,
	Moved,
	Changed,
	Stationary | Changed,
	Moved | Changed,
	All,
}

var categoryNames = map[Category]string{
	Stationary: "Stationary",
	Inserted:   "Inserted",
	Deleted:    "Deleted",
	Moved:      "Moved",
	Changed:    "Changed",
}

// Valid reports whether c is a legal category combination: a single category,
// Stationary|Changed, Moved|Changed, or All.
func (c Category) Valid() bool { return slices.Contains(validCategories, c) }

// Has reports whether all categories in o are set in c.
func (c Category) Has(o Category) bool { return bitmask.Has(c, o) }

func (c Category) String() string {
	if c == 0 {
		return "None"
	}
	var names []string
	for bit := range bitmask.Bits(c, bitmask.Set) {
		name, ok := categoryNames[bit]
		if !ok {
			name = fmt.Sprintf("Category(%#x)", uint8(bit))
		}
		names = append(names, name)
	}
	return strings.Join(names, "|")
}

// ParseCategory parses a category combination in the format produced by [Category.String], e.g.
// "Moved|Changed". Names are case insensitive and "all" is accepted for [All]. The result is not
// validated.
func ParseCategory(s string) (Category, error) {
	var c Category
	for name := range strings.SplitSeq(s, "|") {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, "all") {
			c |= All
			continue
		}
		found := false
		for bit, n := range categoryNames {
			if strings.EqualFold(name, n) {
				c |= bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown category %q", name)
		}
	}
	return c, nil
}

// ConfigError describes a misconfigured [Differ]. It is raised as a panic value when a handler is
// registered, never returned from a diff run.
type ConfigError struct {
	Category Category
	Msg      string
}

func (err *ConfigError) Error() string {
	if err.Category == 0 {
		return "diff: " + err.Msg
	}
	return fmt.Sprintf("diff: %s [%v]", err.Msg, err.Category)
}
