package report

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	"znkr.io/diff/textdiff"

	"znkr.io/ext/diff"
	"znkr.io/ext/seqdiff/input"
)

// Explain describes how the content of a changed element differs. JSON objects are compared
// structurally, everything else line by line in unified format. It returns "" for results
// without a content change.
func Explain(res *diff.Result[input.Element], color bool) (string, error) {
	if !res.ContentChanged {
		return "", nil
	}
	if res.From.JSON != "" && res.To.JSON != "" {
		if s, ok, err := explainJSON(res.From.JSON, res.To.JSON, color); ok || err != nil {
			return s, err
		}
	}
	return textdiff.Unified(elementText(res.From), elementText(res.To)), nil
}

// explainJSON returns false if a or b aren't JSON objects.
func explainJSON(a, b string, color bool) (string, bool, error) {
	var jdoc map[string]any
	if err := json.Unmarshal([]byte(a), &jdoc); err != nil {
		return "", false, nil
	}
	delta, err := gojsondiff.New().Compare([]byte(a), []byte(b))
	if err != nil {
		return "", false, nil
	}
	if !delta.Modified() {
		return "", true, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}
	s, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return "", false, fmt.Errorf("formatting delta: %v", err)
	}
	return s, true, nil
}

// elementText returns the multi line representation of e that is used for line based explanations.
func elementText(e input.Element) string {
	if e.JSON != "" {
		return e.JSON + "\n"
	}
	return e.Text + "\n"
}
