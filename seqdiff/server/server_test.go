package server

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/blog/atom"

	"znkr.io/ext/seqdiff/input"
	"znkr.io/ext/seqdiff/report"
)

func testReport(t *testing.T, to string) *report.Report {
	t.Helper()
	parse := func(s string) []input.Element {
		elems, err := input.Parse([]byte(s), input.Options{Format: input.Lines})
		if err != nil {
			t.Fatal(err)
		}
		return elems
	}
	return report.New("a.txt", "b.txt", input.Lines, parse("a\nb\n"), parse(to))
}

func TestHandler(t *testing.T) {
	h := &handler{}
	snap, err := newSnapshot(testReport(t, "b\na\n"), nil, "http://example.com")
	if err != nil {
		t.Fatal(err)
	}
	h.snapshot.Store(snap)

	tests := []struct {
		method, path string
		wantStatus   int
		wantType     string
		wantBody     string
	}{
		{http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8", "2 moved"},
		{http.MethodGet, "/report.json", http.StatusOK, "application/json; charset=utf-8", `"summary": "2 elements: 2 moved"`},
		{http.MethodGet, "/report.md", http.StatusOK, "text/markdown; charset=utf-8", "## Moved"},
		{http.MethodGet, "/feed.atom", http.StatusOK, "application/atom+xml; charset=utf-8", "http://example.com/feed.atom"},
		{http.MethodHead, "/", http.StatusOK, "text/html; charset=utf-8", ""},
		{http.MethodGet, "/missing", http.StatusNotFound, "text/plain", "not found"},
		{http.MethodPost, "/", http.StatusNotImplemented, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if body := rec.Body.String(); !strings.Contains(body, tt.wantBody) || tt.wantBody == "" && body != "" {
				t.Errorf("body = %q, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestServer(t *testing.T) {
	s, err := Run("localhost:0", testReport(t, "a\nb\n"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			t.Error(err)
		}
	})

	get := func(path string) string {
		t.Helper()
		resp, err := http.Get(s.URL() + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}

	if body := get("/"); !strings.Contains(body, "no differences") {
		t.Errorf("initial report doesn't show identical sequences: %s", body)
	}

	if err := s.ReplaceReport(testReport(t, "a\nc\n")); err != nil {
		t.Fatal(err)
	}
	if body := get("/"); !strings.Contains(body, "1 inserted") {
		t.Errorf("replaced report not served: %s", body)
	}

	var feed atom.Feed
	if err := xml.Unmarshal([]byte(get("/feed.atom")), &feed); err != nil {
		t.Fatalf("invalid feed: %v", err)
	}
	var titles []string
	for _, e := range feed.Entry {
		titles = append(titles, e.Title)
	}
	want := []string{"2 elements: 1 inserted, 1 deleted", "2 elements, no differences"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("unexpected diff [-want,+got]:\n%s", diff)
	}
}
