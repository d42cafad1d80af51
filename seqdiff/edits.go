package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"

	"znkr.io/ext/edit"
	"znkr.io/ext/seqdiff/config"
	"znkr.io/ext/seqdiff/highlight"
)

func newEditsCmd() *cobra.Command {
	var (
		engine    string
		unified   bool
		colorMode string
	)
	cmd := &cobra.Command{
		Use:   "edits FROM TO",
		Short: "Print a line edit script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			color, err := useColor(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var out string
			if unified {
				out = textdiff.Unified(string(a), string(b), textdiff.IndentHeuristic())
			} else {
				edits, err := lineEdits(engine, string(a), string(b))
				if err != nil {
					return err
				}
				m, d, i := edit.Count(edits)
				log.Debugf("%d matches, %d deletions, %d insertions", m, d, i)
				out = formatEdits(edits)
			}
			return writeDiff(cmd.OutOrStdout(), out, color)
		},
	}
	cmd.Flags().StringVar(&engine, "engine", config.Default().Engine, "diff engine: exact or fast")
	cmd.Flags().BoolVar(&unified, "unified", false, "print the edits in unified format")
	cmd.Flags().StringVar(&colorMode, "color", config.Default().Color, "use colours: auto, always or never")
	return cmd
}

// lineEdits diffs the lines of a and b with engine.
func lineEdits(engine, a, b string) ([]edit.Edit[string], error) {
	switch engine {
	case "exact":
		return edit.Lines(splitLines(a), splitLines(b)), nil
	case "fast":
		var edits []edit.Edit[string]
		for _, e := range textdiff.Edits(a, b, textdiff.IndentHeuristic()) {
			line := strings.TrimSuffix(e.Line, "\n")
			switch e.Op {
			case diff.Match:
				edits = append(edits, edit.Edit[string]{Op: edit.Match, X: line, Y: line})
			case diff.Delete:
				edits = append(edits, edit.Edit[string]{Op: edit.Delete, X: line})
			case diff.Insert:
				edits = append(edits, edit.Edit[string]{Op: edit.Insert, Y: line})
			}
		}
		return edits, nil
	}
	return nil, fmt.Errorf("invalid --engine %q, want exact or fast", engine)
}

func splitLines(s string) []string {
	var lines []string
	for l := range strings.Lines(s) {
		lines = append(lines, strings.TrimSuffix(l, "\n"))
	}
	return lines
}

// formatEdits renders edits with diff style prefixes.
func formatEdits(edits []edit.Edit[string]) string {
	var sb strings.Builder
	for _, e := range edits {
		switch e.Op {
		case edit.Match:
			sb.WriteString(" " + e.X + "\n")
		case edit.Delete:
			sb.WriteString("-" + e.X + "\n")
		case edit.Insert:
			sb.WriteString("+" + e.Y + "\n")
		}
	}
	return sb.String()
}

func writeDiff(w io.Writer, s string, color bool) error {
	if color && s != "" {
		var err error
		if s, err = highlight.Terminal(s, highlight.Lang("diff")); err != nil {
			return err
		}
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
