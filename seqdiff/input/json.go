package input

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

func parseJSON(data []byte, opts Options) ([]Element, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errors.New("expected a JSON array")
	}

	var elems []Element
	start, offset := 0, 0
	for _, r := range doc.Array() {
		// Items appear in order, so each one is found after the previous one.
		if i := bytes.Index(data[offset:], []byte(r.Raw)); i >= 0 {
			start = offset + i
			offset = start + len(r.Raw)
		}
		raw := string(pretty.Ugly([]byte(r.Raw)))
		e := Element{
			Line:    1 + bytes.Count(data[:start], []byte{'\n'}),
			Key:     raw,
			Content: raw,
			Text:    raw,
			JSON:    r.Raw,
		}
		if opts.Key != "" {
			e.Key = r.Get(opts.Key).String()
		}
		if opts.Content != "" {
			e.Content = string(pretty.Ugly([]byte(r.Get(opts.Content).Raw)))
		}
		elems = append(elems, e)
	}
	return elems, nil
}
