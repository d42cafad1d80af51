// Package input loads the sequences that seqdiff compares.
package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is an input file format.
type Format string

const (
	Lines Format = "lines" // one element per line
	JSON  Format = "json"  // a JSON array, one element per array item
	Attrs Format = "attrs" // one element per line of key="value" attributes
)

var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Lines, JSON, Attrs:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatFromFilename guesses the format from the file extension, defaulting to [Lines].
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON
	case ".attrs":
		return Attrs
	}
	return Lines
}

// Element is one element of a loaded sequence.
type Element struct {
	Line    int    // line of the element in the input, starting at 1
	Key     string // identity of the element
	Content string // compared to detect content changes
	Text    string // single line representation
	JSON    string // JSON representation, empty for [Lines]
}

// Options controls how elements are extracted.
//
// For [JSON], Key and Content are gjson paths. For [Attrs], they are attribute names. For [Lines],
// Key is a regular expression; its first group, or the whole match if it has no group, is the
// identity of a line. Content is ignored for [Lines].
type Options struct {
	Format  Format
	Key     string
	Content string
}

// Identity reports whether a and b are the same element.
func Identity(a, b Element) bool { return a.Key == b.Key }

// SameContent reports whether a and b have the same content.
func SameContent(a, b Element) bool { return a.Content == b.Content }

// Load reads filename and parses it. An empty opts.Format is derived from the file name.
func Load(filename string, opts Options) ([]Element, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if opts.Format == "" {
		opts.Format = FormatFromFilename(filename)
	}
	elems, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return elems, nil
}

// Parse parses data according to opts.
func Parse(data []byte, opts Options) ([]Element, error) {
	switch opts.Format {
	case Lines:
		return parseLines(data, opts)
	case JSON:
		return parseJSON(data, opts)
	case Attrs:
		return parseAttrs(data, opts)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, opts.Format)
}
