package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want []Element
	}{
		{
			name: "lines",
			in:   "b\n\nalpha-1 x\r\nalpha-2 y\n",
			opts: Options{Format: Lines},
			want: []Element{
				{Line: 1, Key: "b", Content: "b", Text: "b"},
				{Line: 3, Key: "alpha-1 x", Content: "alpha-1 x", Text: "alpha-1 x"},
				{Line: 4, Key: "alpha-2 y", Content: "alpha-2 y", Text: "alpha-2 y"},
			},
		},
		{
			name: "lines_key_group",
			in:   "b\nalpha-1 x\nalpha-2 y",
			opts: Options{Format: Lines, Key: `alpha-(\d)`},
			want: []Element{
				{Line: 1, Key: "b", Content: "b", Text: "b"},
				{Line: 2, Key: "1", Content: "alpha-1 x", Text: "alpha-1 x"},
				{Line: 3, Key: "2", Content: "alpha-2 y", Text: "alpha-2 y"},
			},
		},
		{
			name: "lines_key_match",
			in:   "id7: x",
			opts: Options{Format: Lines, Key: `id\d+`},
			want: []Element{
				{Line: 1, Key: "id7", Content: "id7: x", Text: "id7: x"},
			},
		},
		{
			name: "json",
			in: `[
  {"id": 1, "name": "ada"},
  {"id": 2, "name": "bob"}
]`,
			opts: Options{Format: JSON, Key: "id", Content: "name"},
			want: []Element{
				{
					Line:    2,
					Key:     "1",
					Content: `"ada"`,
					Text:    `{"id":1,"name":"ada"}`,
					JSON:    `{"id": 1, "name": "ada"}`,
				},
				{
					Line:    3,
					Key:     "2",
					Content: `"bob"`,
					Text:    `{"id":2,"name":"bob"}`,
					JSON:    `{"id": 2, "name": "bob"}`,
				},
			},
		},
		{
			name: "json_identical_items",
			in:   "[\n1,\n1\n]",
			opts: Options{Format: JSON},
			want: []Element{
				{Line: 2, Key: "1", Content: "1", Text: "1", JSON: "1"},
				{Line: 3, Key: "1", Content: "1", Text: "1", JSON: "1"},
			},
		},
		{
			name: "json_empty",
			in:   "[]",
			opts: Options{Format: JSON},
			want: nil,
		},
		{
			name: "attrs",
			in: `# people
id="1" name="Ada"
id="2" name="Bob" note="""first
  second"""

id="3" name="Cy \"C\""  # trailing comment
`,
			opts: Options{Format: Attrs, Content: "name"},
			want: []Element{
				{
					Line:    2,
					Key:     "1",
					Content: "Ada",
					Text:    `id="1" name="Ada"`,
					JSON:    `{"id":"1","name":"Ada"}`,
				},
				{
					Line:    3,
					Key:     "2",
					Content: "Bob",
					Text:    `id="2" name="Bob" note="first\nsecond"`,
					JSON:    `{"id":"2","name":"Bob","note":"first\nsecond"}`,
				},
				{
					Line:    6,
					Key:     "3",
					Content: `Cy "C"`,
					Text:    `id="3" name="Cy \"C\""`,
					JSON:    `{"id":"3","name":"Cy \"C\""}`,
				},
			},
		},
		{
			name: "attrs_without_id",
			in:   `b="2" a="1"`,
			opts: Options{Format: Attrs},
			want: []Element{
				{
					Line:    1,
					Key:     `a="1" b="2"`,
					Content: `a="1" b="2"`,
					Text:    `a="1" b="2"`,
					JSON:    `{"a":"1","b":"2"}`,
				},
			},
		},
		{
			name: "attrs_only_comments",
			in:   "# nothing\n\n   \n# here",
			opts: Options{Format: Attrs},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in), tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected diff [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		opts    Options
		wantErr string
	}{
		{"invalid_key_pattern", "a", Options{Format: Lines, Key: "("}, "invalid key pattern"},
		{"invalid_json", "[1,", Options{Format: JSON}, "invalid JSON"},
		{"json_object", `{"a": 1}`, Options{Format: JSON}, "expected a JSON array"},
		{"missing_quote", `id=1`, Options{Format: Attrs}, `expected '"'`},
		{"missing_equals", `id`, Options{Format: Attrs}, "expected '='"},
		{"bad_identifier", `1="a"`, Options{Format: Attrs}, "expected identifier"},
		{"duplicate_attr", `id="1" id="2"`, Options{Format: Attrs}, `duplicate attribute "id"`},
		{"unterminated", `id="1`, Options{Format: Attrs}, "unterminated string"},
		{"unterminated_line", "id=\"1\nname=\"x\"", Options{Format: Attrs}, "unterminated string"},
		{"unterminated_tri_quote", `note="""abc`, Options{Format: Attrs}, "unterminated tri-quoted string"},
		{"unknown_escape", `id="\q"`, Options{Format: Attrs}, `unknown escape sequence \q`},
		{"missing_key", `id="1"`, Options{Format: Attrs, Key: "name"}, `missing key attribute "name"`},
		{"unknown_format", "a", Options{Format: "xml"}, `unknown input format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in), tt.opts)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse([]byte("id=\"1\"\nname=x"), Options{Format: Attrs})
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	want := &SyntaxError{Msg: `unexpected 'x', expected '"'`, Pos: 12, Line: 2, Col: 6}
	if diff := cmp.Diff(want, syntaxErr); diff != "" {
		t.Errorf("unexpected diff [-want,+got]:\n%s", diff)
	}
	if got, want := syntaxErr.Error(), `unexpected 'x', expected '"' [2:6]`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormats(t *testing.T) {
	for name, want := range map[string]Format{
		"a.json":   JSON,
		"b.JSON":   JSON,
		"c.attrs":  Attrs,
		"d.txt":    Lines,
		"Makefile": Lines,
	} {
		if got := FormatFromFilename(name); got != want {
			t.Errorf("FormatFromFilename(%q) = %q, want %q", name, got, want)
		}
	}

	if f, err := ParseFormat("JSON"); err != nil || f != JSON {
		t.Errorf("ParseFormat(JSON) = %q, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(yaml) error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "people.attrs")
	if err := os.WriteFile(good, []byte(`id="1" name="Ada"`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(good, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Key != "1" {
		t.Errorf("Load(%q) = %v, want one element with key 1", good, got)
	}

	bad := filepath.Join(dir, "bad.attrs")
	if err := os.WriteFile(bad, []byte(`id=`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad, Options{})
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Load(%q) error = %v, want *SyntaxError", bad, err)
	}
	if !strings.HasPrefix(err.Error(), bad+": ") {
		t.Errorf("Load(%q) error = %q, want file name prefix", bad, err)
	}

	if _, err := Load(filepath.Join(dir, "missing"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}
