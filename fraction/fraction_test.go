package fraction

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		num, den int
		want     Fraction
	}{
		{6, 8, Fraction{3, 4}},
		{-6, 8, Fraction{-3, 4}},
		{6, -8, Fraction{-3, 4}},
		{-6, -8, Fraction{3, 4}},
		{0, 5, Fraction{0, 1}},
		{7, 1, Fraction{7, 1}},
	}
	for _, tt := range tests {
		if got := New(tt.num, tt.den); got != tt.want {
			t.Errorf("New(%d, %d) = %v, want %v", tt.num, tt.den, got, tt.want)
		}
	}
	require.PanicsWithValue(t, "fraction: zero denominator", func() { New(1, 0) })
}

func TestArithmetic(t *testing.T) {
	half, third := New(1, 2), New(1, 3)
	tests := []struct {
		name string
		got  Fraction
		want Fraction
	}{
		{"add", half.Add(third), New(5, 6)},
		{"add-same-den", New(1, 4).Add(New(1, 4)), New(1, 2)},
		{"sub", half.Sub(third), New(1, 6)},
		{"sub-same-den", New(3, 4).Sub(New(1, 4)), New(1, 2)},
		{"sub-negative", third.Sub(half), New(-1, 6)},
		{"mul", half.Mul(third), New(1, 6)},
		{"div", half.Div(third), New(3, 2)},
		{"div-negative", half.Div(New(-1, 4)), FromInt(-2)},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.got); diff != "" {
			t.Errorf("%s mismatch (-want, +got):\n%s", tt.name, diff)
		}
	}
	require.PanicsWithValue(t, "fraction: division by zero", func() { half.Div(FromInt(0)) })
}

func TestCompare(t *testing.T) {
	tests := []struct {
		f, g Fraction
		want int
	}{
		{New(1, 2), New(2, 4), 0},
		{New(1, 3), New(1, 2), -1},
		{New(-1, 2), New(-1, 3), -1},
		{FromInt(2), New(3, 2), +1},
	}
	for _, tt := range tests {
		if got := tt.f.Cmp(tt.g); got != tt.want {
			t.Errorf("%v.Cmp(%v) = %d, want %d", tt.f, tt.g, got, tt.want)
		}
		if got := tt.f.Equal(tt.g); got != (tt.want == 0) {
			t.Errorf("%v.Equal(%v) = %v", tt.f, tt.g, got)
		}
	}
}

func TestLargeOperands(t *testing.T) {
	big := New(1<<62, 3)
	tests := []struct {
		name string
		got  Fraction
		want Fraction
	}{
		{"add", New(1, 1<<40).Add(New(1, 3<<40)), New(1, 3<<38)},
		{"sub", New(1, 1<<40).Sub(New(1, 3<<40)), New(1, 3<<39)},
		{"mul", big.Mul(New(3, 1<<61)), FromInt(2)},
		{"div", big.Div(New(1<<61, 3)), FromInt(2)},
		{"div-negative", big.Div(New(-(1 << 61), 3)), FromInt(-2)},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.got); diff != "" {
			t.Errorf("%s mismatch (-want, +got):\n%s", tt.name, diff)
		}
	}

	// (M-1)/M and (M-2)/(M-1) differ by 1/(M(M-1)), their cross products overflow an int.
	const m = math.MaxInt
	a, b := New(m-1, m), New(m-2, m-1)
	for _, tt := range []struct {
		f, g Fraction
		want int
	}{
		{a, b, +1},
		{b, a, -1},
		{a, a, 0},
		{New(1-m, m), New(2-m, m-1), -1},
		{New(math.MinInt, 3), New(math.MinInt+1, 3), -1},
		{New(-1, m), FromInt(0), -1},
	} {
		if got := tt.f.Cmp(tt.g); got != tt.want {
			t.Errorf("%v.Cmp(%v) = %d, want %d", tt.f, tt.g, got, tt.want)
		}
	}
}

func TestConversions(t *testing.T) {
	f := New(-7, 2)
	if got := f.Int(); got != -3 {
		t.Errorf("Int() = %d, want -3", got)
	}
	if got := f.Float64(); got != -3.5 {
		t.Errorf("Float64() = %v, want -3.5", got)
	}
	if got := f.String(); got != "-7/2" {
		t.Errorf("String() = %q, want -7/2", got)
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in      float64
		want    Fraction
		wantErr bool
	}{
		{in: 0.75, want: New(3, 4)},
		{in: 0.1, want: New(1, 10)},
		{in: -2.5, want: New(-5, 2)},
		{in: 3, want: FromInt(3)},
		{in: 1e-7, want: New(1, 10000000)},
		{in: 1e300, wantErr: true},
	}
	for _, tt := range tests {
		got, err := FromFloat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("FromFloat(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FromFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		base, exp, want int
	}{
		{2, 10, 1024},
		{3, 0, 1},
		{0, 0, 1},
		{0, 3, 0},
		{-1, 3, -1},
		{-1, 4, 1},
		{-2, 3, -8},
		{10, 18, 1000000000000000000},
		{2, -1, 0},
		{-1, -3, -1},
	}
	for _, tt := range tests {
		if got := Pow(tt.base, tt.exp); got != tt.want {
			t.Errorf("Pow(%d, %d) = %d, want %d", tt.base, tt.exp, got, tt.want)
		}
	}
}
