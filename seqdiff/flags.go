package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"znkr.io/ext/seqdiff/input"
)

// inputFlags are the flags controlling how sequences are loaded.
type inputFlags struct {
	format  string
	key     string
	content string
}

func (f *inputFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.format, "input", "", "input format: lines, json or attrs (default derived from the file extension)")
	flags.StringVar(&f.key, "key", "", "identity of an element: a gjson path, an attribute name, or a regexp for lines")
	flags.StringVar(&f.content, "content", "", "content of an element: a gjson path or an attribute name (default whole element)")
}

func (f *inputFlags) options() (input.Options, error) {
	opts := input.Options{Key: f.key, Content: f.content}
	if f.format != "" {
		format, err := input.ParseFormat(f.format)
		if err != nil {
			return input.Options{}, err
		}
		opts.Format = format
	}
	return opts, nil
}

// useColor decides whether to write ANSI colours to w. mode is one of auto, always or never.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && os.Getenv("NO_COLOR") == "" && isatty.IsTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("invalid --color %q, want auto, always or never", mode)
}
