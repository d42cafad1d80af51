package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"znkr.io/ext/diff"
	"znkr.io/ext/seqdiff/highlight"
	"znkr.io/ext/seqdiff/input"
)

type palette struct {
	header, stationary, inserted, deleted, moved, changed *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		header:     color.New(color.Bold),
		stationary: color.New(color.FgHiBlack),
		inserted:   color.New(color.FgGreen),
		deleted:    color.New(color.FgRed),
		moved:      color.New(color.FgYellow),
		changed:    color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.header, p.stationary, p.inserted, p.deleted, p.moved, p.changed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// of returns the colour for rows of category c.
func (p *palette) of(c diff.Category) *color.Color {
	switch {
	case c.Has(diff.Inserted):
		return p.inserted
	case c.Has(diff.Deleted):
		return p.deleted
	case c.Has(diff.Changed):
		return p.changed
	case c.Has(diff.Moved):
		return p.moved
	}
	return p.stationary
}

func (r *Report) writeText(w io.Writer, useColor bool) error {
	p := newPalette(useColor)
	if _, err := p.header.Fprintf(w, "%s → %s: %s\n", r.From, r.To, r.Summary()); err != nil {
		return err
	}

	var table bytes.Buffer
	tw := tabwriter.NewWriter(&table, 0, 4, 2, ' ', 0)
	for i := range r.Results {
		res := &r.Results[i]
		marker := symbol(res.Category)
		if res.Category.Has(diff.Changed) {
			marker += "*"
		}
		e := element(res)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, positions(res), cell(e.Key), cell(rowText(e)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	// Colour whole rows after alignment.
	i := 0
	for row := range strings.Lines(table.String()) {
		row = strings.TrimRight(row, " \n")
		if _, err := fmt.Fprintln(w, p.of(r.Results[i].Category).Sprint(row)); err != nil {
			return err
		}
		i++
	}

	if !r.Explain {
		return nil
	}
	for i := range r.Results {
		res := &r.Results[i]
		s, err := Explain(res, useColor)
		if err != nil {
			return err
		}
		if s == "" {
			continue
		}
		if useColor && !isJSON(res) {
			if s, err = highlight.Terminal(s, highlight.Lang("diff")); err != nil {
				return err
			}
		}
		p.header.Fprintf(w, "\n%s (%s)\n", res.To.Key, positions(res))
		fmt.Fprintln(w, strings.TrimRight(s, "\n"))
	}
	return nil
}

// rowText returns the text column of e, which is empty if it would repeat the key.
func rowText(e input.Element) string {
	if e.Text == e.Key {
		return ""
	}
	return e.Text
}

var cellEscaper = strings.NewReplacer("\n", `\n`, "\t", `\t`)

func cell(s string) string { return cellEscaper.Replace(s) }

func isJSON(res *diff.Result[input.Element]) bool {
	return res.From.JSON != "" && res.To.JSON != ""
}
