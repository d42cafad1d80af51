package diff

import (
	"testing"

	"znkr.io/ext/bitmask"
)

func TestCategoryValid(t *testing.T) {
	valid := map[Category]bool{
		Stationary:           true,
		Inserted:             true,
		Deleted:              true,
		Moved:                true,
		Changed:              true,
		Stationary | Changed: true,
		Moved | Changed:      true,
		All:                  true,
	}
	// Exhaustively check all subsets of All.
	for c := Category(0); c <= All; c++ {
		if got := c.Valid(); got != valid[c] {
			t.Errorf("%v.Valid() = %v, want %v", c, got, valid[c])
		}
	}
	if (All + 1).Valid() {
		t.Errorf("%v.Valid() = true, want false", All+1)
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{0, "None"},
		{Stationary, "Stationary"},
		{Moved | Changed, "Moved|Changed"},
		{All, "Stationary|Inserted|Deleted|Moved|Changed"},
		{Inserted | 0x80, "Inserted|Category(0x80)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Category(%#x).String() = %q, want %q", uint8(tt.c), got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "Moved", want: Moved},
		{in: "moved|changed", want: Moved | Changed},
		{in: " Stationary | Changed ", want: Stationary | Changed},
		{in: "all", want: All},
		{in: "Inserted|Nope", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for c := Category(1); c <= All; c++ {
		got, err := ParseCategory(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v", c.String(), got, err, c)
		}
	}
}

func TestCategoryHas(t *testing.T) {
	c := Stationary | Changed
	if !c.Has(Stationary) || !c.Has(Changed) || !c.Has(c) {
		t.Errorf("%v should contain its own bits", c)
	}
	if c.Has(Moved) || c.Has(Moved|Changed) {
		t.Errorf("%v should not contain Moved", c)
	}
	if n := bitmask.Count(All); n != 5 {
		t.Errorf("All has %d bits, want 5", n)
	}
}
