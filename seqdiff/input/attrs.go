package input

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError describes a malformed attribute file.
type SyntaxError struct {
	Msg       string
	Pos       int
	Line, Col int
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%s [%d:%d]", err.Msg, err.Line, err.Col)
}

const eof = -1

// defaultKey is the attribute used as identity if no key is configured.
const defaultKey = "id"

// parseAttrs parses lines of the form
//
//	id="1" name="Ada Lovelace" note="""spans
//	  multiple lines"""
//
// Blank lines and lines starting with '#' are skipped.
func parseAttrs(data []byte, opts Options) (_ []Element, err error) {
	defer func() {
		if e := recover(); e != nil {
			if e, ok := e.(*SyntaxError); ok {
				err = e
				return
			}
			panic(e)
		}
	}()

	p := parser{in: data, line: 1}
	p.next()

	var elems []Element
	for {
		rec, ok := p.parseNextRecord()
		if !ok {
			break
		}
		elems = append(elems, p.element(rec, opts))
	}
	return elems, nil
}

type record struct {
	pos, line int
	attrs     map[string]string
}

func (p *parser) element(rec record, opts Options) Element {
	text := canonical(rec.attrs)
	b, err := json.Marshal(rec.attrs)
	if err != nil {
		panic(err) // maps of strings always marshal
	}
	e := Element{
		Line:    rec.line,
		Key:     text,
		Content: text,
		Text:    text,
		JSON:    string(b),
	}
	if key, ok := rec.attrs[cmp.Or(opts.Key, defaultKey)]; ok {
		e.Key = key
	} else if opts.Key != "" {
		p.errorAt(rec, "missing key attribute %q", opts.Key)
	}
	if opts.Content != "" {
		e.Content = rec.attrs[opts.Content]
	}
	return e
}

func canonical(attrs map[string]string) string {
	var sb strings.Builder
	for i, k := range slices.Sorted(maps.Keys(attrs)) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%q", k, attrs[k])
	}
	return sb.String()
}

type parser struct {
	in []byte

	ch  rune
	chw int

	pos       int
	line, col int
}

func (p *parser) parseNextRecord() (record, bool) {
	for {
		for unicode.IsSpace(p.ch) {
			p.next()
		}
		switch p.ch {
		case eof:
			return record{}, false
		case '#':
			p.skipLine()
			continue
		}

		rec := record{pos: p.pos, line: p.line, attrs: make(map[string]string)}
		for {
			for p.ch == ' ' || p.ch == '\t' || p.ch == '\r' {
				p.next()
			}
			if p.ch == '\n' || p.ch == eof {
				break
			}
			if p.ch == '#' {
				p.skipLine()
				break
			}
			name := p.parseIdent()
			if !p.consume("=") {
				p.errorf("unexpected %q, expected '='", p.ch)
			}
			if _, dup := rec.attrs[name]; dup {
				p.errorf("duplicate attribute %q", name)
			}
			rec.attrs[name] = p.parseValue()
		}
		return rec, true
	}
}

func (p *parser) errorf(format string, args ...any) {
	panic(&SyntaxError{
		Msg:  fmt.Sprintf(format, args...),
		Pos:  p.pos,
		Line: p.line,
		Col:  p.col,
	})
}

func (p *parser) errorAt(rec record, format string, args ...any) {
	panic(&SyntaxError{
		Msg:  fmt.Sprintf(format, args...),
		Pos:  rec.pos,
		Line: rec.line,
		Col:  1,
	})
}

func (p *parser) next() {
	if p.ch == '\n' {
		p.line++
		p.col = 0
	}
	p.pos += p.chw
	if p.pos >= len(p.in) {
		p.ch = eof
		p.chw = 0
		return
	}
	p.ch, p.chw = utf8.DecodeRune(p.in[p.pos:])
	p.col++
	if p.ch == utf8.RuneError && p.chw == 1 {
		p.errorf("invalid UTF-8")
	}
}

func (p *parser) skipLine() {
	for p.ch != '\n' && p.ch != eof {
		p.next()
	}
}

func (p *parser) consume(s string) bool {
	for _, r := range s {
		if p.ch != r {
			return false
		}
		p.next()
	}
	return true
}

func (p *parser) isnext(s string) bool {
	if len(p.in)-p.pos < len(s) {
		return false
	}
	return bytes.Equal(p.in[p.pos:p.pos+len(s)], []byte(s))
}

func (p *parser) parseIdent() string {
	if !unicode.IsLetter(p.ch) && p.ch != '_' {
		p.errorf("unexpected %q, expected identifier", p.ch)
	}
	pos := p.pos
	for unicode.IsLetter(p.ch) || unicode.IsDigit(p.ch) || p.ch == '-' || p.ch == '_' || p.ch == '.' {
		p.next()
	}
	return string(p.in[pos:p.pos])
}

func (p *parser) parseValue() string {
	if p.ch != '"' {
		p.errorf("unexpected %q, expected '\"'", p.ch)
	}

	var sb strings.Builder
	if p.isnext(`"""`) {
		p.consume(`"""`)
		for !p.isnext(`"""`) {
			if p.ch == eof {
				p.errorf("unterminated tri-quoted string")
			}
			r := p.ch
			sb.WriteRune(r)
			p.next()
			if r == '\n' {
				// Drop the indentation of continuation lines.
				for p.ch == ' ' || p.ch == '\t' {
					p.next()
				}
			}
		}
		p.consume(`"""`)
		return sb.String()
	}

	p.next()
	for p.ch != '"' {
		switch p.ch {
		case eof, '\n':
			p.errorf("unterminated string")
		case '\\':
			p.next()
			switch p.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteRune(p.ch)
			default:
				p.errorf("unknown escape sequence \\%c", p.ch)
			}
		default:
			sb.WriteRune(p.ch)
		}
		p.next()
	}
	p.next()
	return sb.String()
}
