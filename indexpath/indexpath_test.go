package indexpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewCopies(t *testing.T) {
	in := []int{1, 2}
	p := New(in...)
	in[0] = 9
	if diff := cmp.Diff(Path{1, 2}, p); diff != "" {
		t.Errorf("New mismatch (-want, +got):\n%s", diff)
	}
	require.PanicsWithValue(t, "indexpath: empty path", func() { New() })
}

func TestCompare(t *testing.T) {
	tests := []struct {
		p, q Path
		want int
	}{
		{New(0), New(0), 0},
		{New(0), New(1), -1},
		{New(2), New(1), +1},
		{New(5), New(0, 0), -1},
		{New(0, 0), New(5), +1},
		{New(1, 2), New(1, 3), -1},
		{New(1, 3, 0), New(1, 2, 9), +1},
	}
	for _, tt := range tests {
		if got := tt.p.Compare(tt.q); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestDerived(t *testing.T) {
	p := New(1, 2, 3)
	tests := []struct {
		name string
		got  Path
		want Path
	}{
		{"successor", p.Successor(), New(1, 2, 4)},
		{"predecessor", p.Predecessor(), New(1, 2, 2)},
		{"append", p.Append(7), New(1, 2, 3, 7)},
		{"add", p.Add(Interval{0, 1}), New(1, 3, 3)},
		{"add-longer", New(1).Add(Interval{1, 2}), New(2, 2)},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.got); diff != "" {
			t.Errorf("%s mismatch (-want, +got):\n%s", tt.name, diff)
		}
	}
	if diff := cmp.Diff(New(1, 2, 3), p); diff != "" {
		t.Errorf("derived paths modified the original (-want, +got):\n%s", diff)
	}

	parent, ok := p.Parent()
	if !ok || !parent.Equal(New(1, 2)) {
		t.Errorf("%v.Parent() = %v, %v; want 1.2, true", p, parent, ok)
	}
	if _, ok := New(4).Parent(); ok {
		t.Errorf("4.Parent() reported a parent")
	}
	if p.Len() != 3 || p.At(1) != 2 || p.Last() != 3 {
		t.Errorf("accessors of %v: Len=%d At(1)=%d Last=%d", p, p.Len(), p.At(1), p.Last())
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		from, to Path
		want     Interval
	}{
		{New(1), New(4), Interval{3}},
		{New(4), New(1), Interval{-3}},
		{New(1, 2), New(3), Interval{2, -2}},
		{New(0), New(0, 5), Interval{0, 5}},
	}
	for _, tt := range tests {
		got := tt.from.Distance(tt.to)
		if !got.Equal(tt.want) {
			t.Errorf("%v.Distance(%v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
		if got.Len() == tt.to.Len() {
			if back := tt.from.Add(got); !back.Equal(tt.to) {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.from, got, back, tt.to)
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{in: "0", want: New(0)},
		{in: "0.3.1", want: New(0, 3, 1)},
		{in: "-1.2", want: New(-1, 2)},
		{in: "", wantErr: true},
		{in: "1..2", wantErr: true},
		{in: "a.b", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want, +got):\n%s", tt.in, diff)
		}
		if err == nil && got.String() != tt.in {
			t.Errorf("Parse(%q).String() = %q", tt.in, got.String())
		}
	}
}
