package input

import (
	"fmt"
	"regexp"
	"strings"
)

func parseLines(data []byte, opts Options) ([]Element, error) {
	var re *regexp.Regexp
	if opts.Key != "" {
		var err error
		re, err = regexp.Compile(opts.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid key pattern: %v", err)
		}
	}

	var elems []Element
	lineNo := 0
	for l := range strings.Lines(string(data)) {
		lineNo++
		l = strings.TrimRight(l, "\r\n")
		if l == "" {
			continue
		}
		elems = append(elems, Element{
			Line:    lineNo,
			Key:     lineKey(re, l),
			Content: l,
			Text:    l,
		})
	}
	return elems, nil
}

func lineKey(re *regexp.Regexp, l string) string {
	if re == nil {
		return l
	}
	m := re.FindStringSubmatch(l)
	switch {
	case m == nil:
		return l
	case len(m) > 1:
		return m[1]
	}
	return m[0]
}
