// Package report renders the results of comparing two sequences.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"znkr.io/ext/bitmask"
	"znkr.io/ext/diff"
	"znkr.io/ext/seqdiff/input"
)

// Format is an output format.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

var Formats = []Format{Text, JSON, Markdown, HTML}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Report is the result of comparing two sequences.
type Report struct {
	From, To  string
	Input     input.Format
	Generated time.Time
	Elements  int // number of elements in the "to" sequence
	Results   []diff.Result[input.Element]
	Explain   bool // add explanations for content changes
}

// Compare loads from and to and compares them.
func Compare(from, to string, opts input.Options) (*Report, error) {
	x, err := input.Load(from, opts)
	if err != nil {
		return nil, err
	}
	y, err := input.Load(to, opts)
	if err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		format = input.FormatFromFilename(to)
	}
	return New(from, to, format, x, y), nil
}

// New compares the elements x and y.
func New(from, to string, format input.Format, x, y []input.Element) *Report {
	return &Report{
		From:      from,
		To:        to,
		Input:     format,
		Generated: time.Now(),
		Elements:  len(y),
		Results:   diff.Collect(x, y, input.Identity, input.SameContent),
	}
}

// Filter drops all results that don't have any of the categories in only.
func (r *Report) Filter(only diff.Category) {
	if only == diff.All {
		return
	}
	kept := r.Results[:0]
	for _, res := range r.Results {
		if bitmask.Any(res.Category, only) {
			kept = append(kept, res)
		}
	}
	r.Results = kept
}

// Counts counts the results per category. Changed results also count towards their position
// category.
type Counts struct {
	Stationary int `json:"stationary"`
	Inserted   int `json:"inserted"`
	Deleted    int `json:"deleted"`
	Moved      int `json:"moved"`
	Changed    int `json:"changed"`
}

func (r *Report) Counts() Counts {
	var c Counts
	for _, res := range r.Results {
		switch {
		case res.Category.Has(diff.Stationary):
			c.Stationary++
		case res.Category.Has(diff.Inserted):
			c.Inserted++
		case res.Category.Has(diff.Deleted):
			c.Deleted++
		case res.Category.Has(diff.Moved):
			c.Moved++
		}
		if res.Category.Has(diff.Changed) {
			c.Changed++
		}
	}
	return c
}

// Identical reports whether the report shows no differences.
func (c Counts) Identical() bool {
	return c.Inserted == 0 && c.Deleted == 0 && c.Moved == 0 && c.Changed == 0
}

// Summary describes the report in one line, e.g. "1,204 elements: 3 inserted, 1 moved".
func (r *Report) Summary() string {
	c := r.Counts()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", humanize.Comma(int64(r.Elements)), english.PluralWord(r.Elements, "element", ""))
	if c.Identical() {
		sb.WriteString(", no differences")
		return sb.String()
	}
	sep := ": "
	for _, n := range []struct {
		count int
		name  string
	}{
		{c.Inserted, "inserted"},
		{c.Deleted, "deleted"},
		{c.Moved, "moved"},
		{c.Changed, "changed"},
	} {
		if n.count == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s%s %s", sep, humanize.Comma(int64(n.count)), n.name)
		sep = ", "
	}
	return sb.String()
}

// Options control rendering.
type Options struct {
	Color bool // use ANSI colours, only used by [Text]
}

// Write renders r in format f.
func (r *Report) Write(w io.Writer, f Format, opts Options) error {
	switch f {
	case Text:
		return r.writeText(w, opts.Color)
	case JSON:
		return r.writeJSON(w)
	case Markdown:
		s, err := r.Markdown()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	case HTML:
		b, err := r.HTML()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unknown output format %q", f)
}

// symbol returns a one character marker for the position category of c.
func symbol(c diff.Category) string {
	switch {
	case c.Has(diff.Inserted):
		return "+"
	case c.Has(diff.Deleted):
		return "-"
	case c.Has(diff.Moved):
		return ">"
	}
	return "="
}

func positions(res *diff.Result[input.Element]) string {
	switch {
	case !res.HasFrom():
		return fmt.Sprint(res.ToPos)
	case !res.HasTo():
		return fmt.Sprint(res.FromPos)
	case res.FromPos == res.ToPos:
		return fmt.Sprint(res.ToPos)
	}
	return fmt.Sprintf("%d→%d", res.FromPos, res.ToPos)
}

// element returns the element a result is about, preferring the "to" side.
func element(res *diff.Result[input.Element]) input.Element {
	if res.HasTo() {
		return res.To
	}
	return res.From
}
