package report

import (
	"encoding/json"
	"io"
	"time"

	"znkr.io/ext/seqdiff/input"
)

type jsonReport struct {
	From      string       `json:"from"`
	To        string       `json:"to"`
	Generated time.Time    `json:"generated"`
	Summary   string       `json:"summary"`
	Counts    Counts       `json:"counts"`
	Results   []jsonResult `json:"results"`
}

type jsonResult struct {
	Category    string          `json:"category"`
	FromPos     *int            `json:"fromPos,omitempty"`
	ToPos       *int            `json:"toPos,omitempty"`
	Key         string          `json:"key"`
	From        json.RawMessage `json:"from,omitempty"`
	To          json.RawMessage `json:"to,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
}

func (r *Report) jsonReport() (*jsonReport, error) {
	jr := &jsonReport{
		From:      r.From,
		To:        r.To,
		Generated: r.Generated,
		Summary:   r.Summary(),
		Counts:    r.Counts(),
		Results:   make([]jsonResult, 0, len(r.Results)),
	}
	for i := range r.Results {
		res := &r.Results[i]
		jres := jsonResult{
			Category: res.Category.String(),
			Key:      element(res).Key,
		}
		if res.HasFrom() {
			jres.FromPos = &res.FromPos
			jres.From = raw(res.From)
		}
		if res.HasTo() {
			jres.ToPos = &res.ToPos
			jres.To = raw(res.To)
		}
		if r.Explain {
			s, err := Explain(res, false)
			if err != nil {
				return nil, err
			}
			jres.Explanation = s
		}
		jr.Results = append(jr.Results, jres)
	}
	return jr, nil
}

func (r *Report) writeJSON(w io.Writer) error {
	jr, err := r.jsonReport()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

// raw returns the JSON representation of e, elements without one are encoded as strings.
func raw(e input.Element) json.RawMessage {
	if e.JSON != "" {
		return json.RawMessage(e.JSON)
	}
	b, _ := json.Marshal(e.Text)
	return b
}
