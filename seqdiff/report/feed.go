package report

import (
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/tools/blog/atom"
)

// Feed renders an Atom feed with one entry per run, newest first. base is the URL the feed is
// served from, without the trailing slash.
func Feed(runs []*Report, base string) ([]byte, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("rendering feed: no runs")
	}
	base = strings.TrimSuffix(base, "/")
	latest := runs[0]

	feed := atom.Feed{
		Title:   fmt.Sprintf("seqdiff %s → %s", latest.From, latest.To),
		ID:      "tag:znkr.io,2025:seqdiff:" + latest.From + ":" + latest.To,
		Updated: atom.Time(latest.Generated),
		Link: []atom.Link{{
			Rel:  "self",
			Href: base + "/feed.atom",
		}},
		Author: &atom.Person{
			Name: "seqdiff",
		},
	}

	for _, r := range runs {
		md, err := r.markdown(plain)
		if err != nil {
			return nil, err
		}
		body, _, err := render([]byte(md))
		if err != nil {
			return nil, err
		}

		e := &atom.Entry{
			Title: r.Summary(),
			ID:    fmt.Sprintf("%s:%d", feed.ID, r.Generated.UnixNano()),
			Link: []atom.Link{{
				Rel:  "alternate",
				Href: base + "/",
			}},
			Published: atom.Time(r.Generated),
			Updated:   atom.Time(r.Generated),
			Summary: &atom.Text{
				Type: "text",
				Body: r.Summary(),
			},
			Content: &atom.Text{
				Type: "html",
				Body: string(body),
			},
		}
		feed.Entry = append(feed.Entry, e)
	}

	b, err := xml.Marshal(feed)
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %v", err)
	}
	return b, nil
}
