// Package highlight colours elements and line diffs for HTML and terminal output.
package highlight

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"

	"znkr.io/ext/edit"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordConstant:   "hl-bl",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.LiteralNumber:     "hl-n",
	chroma.Comment:           "hl-ii",
	chroma.GenericDeleted:    "hl-del",
	chroma.GenericInserted:   "hl-ins",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericSubheading: "hl-b",
}

// DefaultStyle is the chroma style used for terminal output.
const DefaultStyle = "monokai"

type Option func(*highlighter)

func Lang(lang string) Option {
	return func(o *highlighter) {
		o.lexer = lexers.Get(lang)
	}
}

func LangFromFilename(filename string) Option {
	return func(o *highlighter) {
		o.lexer = lexers.Match(filename)
	}
}

// Style selects the chroma style for [Terminal].
func Style(name string) Option {
	return func(o *highlighter) {
		o.style = styles.Get(name)
	}
}

// HTML highlights a single element and returns it as HTML with class based spans.
func HTML(in string, opts ...Option) (template.HTML, error) {
	hl := fromOptions(opts)
	tokens, err := hl.tokens(in)
	if err != nil {
		return "", fmt.Errorf("parsing input: %v", err)
	}
	return template.HTML(hl.highlight(tokens)), nil
}

// Terminal highlights in with ANSI escape sequences.
func Terminal(in string, opts ...Option) (string, error) {
	hl := fromOptions(opts)
	it, err := hl.lexer.Tokenise(nil, in)
	if err != nil {
		return "", fmt.Errorf("parsing input: %v", err)
	}
	var sb strings.Builder
	if err := formatters.TTY256.Format(&sb, hl.style, it); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// Edit is a highlighted line of a line diff. Line numbers start at 1, the line number of the side
// a line is missing from is -1.
type Edit struct {
	Op      edit.Op
	XLineNo int
	YLineNo int
	Content template.HTML
}

func (ed *Edit) IsMatch() bool  { return ed.Op == edit.Match }
func (ed *Edit) IsDelete() bool { return ed.Op == edit.Delete }
func (ed *Edit) IsInsert() bool { return ed.Op == edit.Insert }

// Edits highlights a line edit script.
func Edits(edits []edit.Edit[string], opts ...Option) ([]Edit, error) {
	hl := fromOptions(opts)
	b := builder{hl: hl}
	for _, e := range edits {
		line := e.X
		if e.Op == edit.Insert {
			line = e.Y
		}
		if err := b.add(e.Op, line); err != nil {
			return nil, err
		}
	}
	return b.edits, nil
}

// Diff diffs the lines of a and b and highlights the result.
func Diff(a, b string, opts ...Option) ([]Edit, error) {
	hl := fromOptions(opts)
	bld := builder{hl: hl}
	for _, e := range textdiff.Edits(a, b, textdiff.IndentHeuristic()) {
		if err := bld.add(op(e.Op), e.Line); err != nil {
			return nil, err
		}
	}
	return bld.edits, nil
}

// Hunks diffs the lines of a and b and highlights the changed regions with some context.
func Hunks(a, b string, opts ...Option) ([][]Edit, error) {
	hl := fromOptions(opts)
	var ret [][]Edit
	for _, h := range textdiff.Hunks(a, b, textdiff.IndentHeuristic()) {
		bld := builder{hl: hl, s: h.LineNoX, t: h.LineNoY}
		for _, e := range h.Edits {
			if err := bld.add(op(e.Op), e.Line); err != nil {
				return nil, err
			}
		}
		ret = append(ret, bld.edits)
	}
	return ret, nil
}

func op(o diff.Op) edit.Op {
	switch o {
	case diff.Delete:
		return edit.Delete
	case diff.Insert:
		return edit.Insert
	}
	return edit.Match
}

// builder tracks the line numbers while edits are appended.
type builder struct {
	hl    *highlighter
	s, t  int
	edits []Edit
}

func (b *builder) add(o edit.Op, line string) error {
	tokens, err := b.hl.tokens(strings.TrimSuffix(line, "\n"))
	if err != nil {
		return err
	}
	ln := template.HTML(b.hl.highlight(tokens))
	switch o {
	case edit.Match:
		b.edits = append(b.edits, Edit{o, b.s + 1, b.t + 1, ln})
		b.s++
		b.t++
	case edit.Delete:
		b.edits = append(b.edits, Edit{o, b.s + 1, -1, ln})
		b.s++
	case edit.Insert:
		b.edits = append(b.edits, Edit{o, -1, b.t + 1, ln})
		b.t++
	}
	return nil
}

type highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

func fromOptions(opts []Option) *highlighter {
	hl := &highlighter{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(hl)
	}

	if hl.lexer == nil {
		hl.lexer = lexers.Fallback
	}
	hl.lexer = chroma.Coalesce(hl.lexer)
	if hl.style == nil {
		hl.style = styles.Get(DefaultStyle)
	}
	return hl
}

func (hl *highlighter) highlight(line []chroma.Token) string {
	var sb strings.Builder
	for _, token := range line {
		class := class(token.Type)
		if class != "" {
			fmt.Fprintf(&sb, "<span class=\"%s\">", class)
		}
		sb.WriteString(html.EscapeString(token.Value))
		if class != "" {
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

// tokens tokenises in. Lexers that ensure a trailing newline get it removed again.
func (hl *highlighter) tokens(in string) ([]chroma.Token, error) {
	it, err := hl.lexer.Tokenise(nil, in)
	if err != nil {
		return nil, fmt.Errorf("creating iterator: %v", err)
	}
	tokens := it.Tokens()
	if n := len(tokens); n > 0 && !strings.HasSuffix(in, "\n") {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}
	return tokens, nil
}

func class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}
