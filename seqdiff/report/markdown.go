package report

import (
	"fmt"
	"strings"
	"time"

	"znkr.io/ext/diff"
	"znkr.io/ext/seqdiff/input"
)

// flavor controls how elements and explanations are embedded in markdown.
type flavor struct {
	code  func(s string) string
	block func(s string) string
}

var plain = flavor{
	code: func(s string) string {
		fence := "`"
		for strings.Contains(s, fence) {
			fence += "`"
		}
		if len(fence) > 1 || strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
			s = " " + s + " "
		}
		return fence + strings.ReplaceAll(s, "|", `\|`) + fence
	},
	block: func(s string) string {
		fence := "```"
		for strings.Contains(s, fence) {
			fence += "`"
		}
		return fence + "diff\n" + strings.TrimRight(s, "\n") + "\n" + fence + "\n"
	},
}

// Markdown renders r as markdown.
func (r *Report) Markdown() (string, error) {
	return r.markdown(plain)
}

type section struct {
	title   string
	columns []string
	match   func(diff.Category) bool
	cells   func(res *diff.Result[input.Element]) []string
}

func (r *Report) sections() []section {
	pos := func(p int) string { return fmt.Sprint(p) }
	has := func(c diff.Category) func(diff.Category) bool {
		return func(o diff.Category) bool { return o.Has(c) }
	}
	return []section{
		{
			title:   "Inserted",
			columns: []string{"to", "key", "element"},
			match:   has(diff.Inserted),
			cells: func(res *diff.Result[input.Element]) []string {
				return []string{pos(res.ToPos), res.To.Key, res.To.Text}
			},
		},
		{
			title:   "Deleted",
			columns: []string{"from", "key", "element"},
			match:   has(diff.Deleted),
			cells: func(res *diff.Result[input.Element]) []string {
				return []string{pos(res.FromPos), res.From.Key, res.From.Text}
			},
		},
		{
			title:   "Moved",
			columns: []string{"from", "to", "key", "element"},
			match:   has(diff.Moved),
			cells: func(res *diff.Result[input.Element]) []string {
				return []string{pos(res.FromPos), pos(res.ToPos), res.To.Key, res.To.Text}
			},
		},
		{
			title:   "Changed",
			columns: []string{"from", "to", "key", "before", "after"},
			match:   has(diff.Changed),
			cells: func(res *diff.Result[input.Element]) []string {
				return []string{pos(res.FromPos), pos(res.ToPos), res.To.Key, res.From.Text, res.To.Text}
			},
		},
		{
			title:   "Stationary",
			columns: []string{"pos", "key", "element"},
			match:   has(diff.Stationary),
			cells: func(res *diff.Result[input.Element]) []string {
				return []string{pos(res.ToPos), res.To.Key, res.To.Text}
			},
		},
	}
}

func (r *Report) markdown(fl flavor) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s → %s\n\n", r.From, r.To)
	fmt.Fprintf(&sb, "NOTE: %s\n\n", r.Summary())

	for _, sec := range r.sections() {
		var rows []*diff.Result[input.Element]
		for i := range r.Results {
			if sec.match(r.Results[i].Category) {
				rows = append(rows, &r.Results[i])
			}
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n\n", sec.title)
		fmt.Fprintf(&sb, "| %s |\n", strings.Join(sec.columns, " | "))
		sb.WriteString(strings.Repeat("| --- ", len(sec.columns)) + "|\n")
		for _, res := range rows {
			cells := sec.cells(res)
			for i, c := range cells {
				// Positions are plain, keys and elements verbatim.
				if !isPosition(sec.columns[i]) {
					cells[i] = fl.code(c)
				}
			}
			fmt.Fprintf(&sb, "| %s |\n", strings.Join(cells, " | "))
		}
		sb.WriteString("\n")

		if sec.title != "Changed" || !r.Explain {
			continue
		}
		for _, res := range rows {
			s, err := Explain(res, false)
			if err != nil {
				return "", err
			}
			if s == "" {
				continue
			}
			fmt.Fprintf(&sb, "### %s\n\n", res.To.Key)
			fmt.Fprintf(&sb, "CHANGED: %s at %s\n\n", fl.code(res.To.Key), positions(res))
			sb.WriteString(fl.block(s))
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "_Generated %s_\n", r.Generated.UTC().Format(time.DateTime+" MST"))
	return sb.String(), nil
}

func isPosition(column string) bool {
	switch column {
	case "from", "to", "pos":
		return true
	}
	return false
}
