// Package fraction implements exact integer fractions.
package fraction

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Fraction is a reduced fraction with a positive denominator. The zero value is not valid, use
// [New] or [FromInt].
//
// Arithmetic cancels common factors before multiplying, so intermediate results only overflow
// if the reduced result doesn't fit into an int. Such overflows are not detected.
type Fraction struct {
	Num, Den int
}

// New returns num/den in lowest terms. It panics if den is zero.
func New(num, den int) Fraction {
	if den == 0 {
		panic("fraction: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(num, den)
	return Fraction{num / g, den / g}
}

// FromInt returns n/1.
func FromInt(n int) Fraction { return Fraction{n, 1} }

// FromFloat returns the fraction of the decimal digits that are visible when formatting f as
// shortest decimal, e.g. 0.75 becomes 3/4 and 0.1 becomes 1/10.
func FromFloat(f float64) (Fraction, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Fraction{}, fmt.Errorf("fraction: cannot represent %v", f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	den := 1
	if i := strings.IndexByte(s, '.'); i >= 0 {
		digits := len(s) - i - 1
		if digits > 18 {
			return Fraction{}, fmt.Errorf("fraction: %v has too many decimal digits", f)
		}
		den = Pow(10, digits)
		s = s[:i] + s[i+1:]
	}
	num, err := strconv.Atoi(s)
	if err != nil {
		return Fraction{}, fmt.Errorf("fraction: %v is out of range", f)
	}
	return New(num, den), nil
}

// Add returns f+g.
func (f Fraction) Add(g Fraction) Fraction {
	d := gcd(f.Den, g.Den)
	return New(f.Num*(g.Den/d)+g.Num*(f.Den/d), f.Den/d*g.Den)
}

// Sub returns f-g.
func (f Fraction) Sub(g Fraction) Fraction {
	d := gcd(f.Den, g.Den)
	return New(f.Num*(g.Den/d)-g.Num*(f.Den/d), f.Den/d*g.Den)
}

// Mul returns f*g.
func (f Fraction) Mul(g Fraction) Fraction {
	a, b := gcd(f.Num, g.Den), gcd(g.Num, f.Den)
	return New((f.Num/a)*(g.Num/b), (f.Den/b)*(g.Den/a))
}

// Div returns f/g. It panics if g is zero.
func (f Fraction) Div(g Fraction) Fraction {
	if g.Num == 0 {
		panic("fraction: division by zero")
	}
	a, b := gcd(f.Num, g.Num), gcd(f.Den, g.Den)
	return New((f.Num/a)*(g.Den/b), (f.Den/b)*(g.Num/a))
}

// Cmp returns -1, 0 or +1 depending on whether f is less than, equal to or greater than g. The
// comparison is exact for all values.
func (f Fraction) Cmp(g Fraction) int {
	if c := cmp.Compare(sign(f.Num), sign(g.Num)); c != 0 || f.Num == 0 {
		return c
	}
	lhi, llo := bits.Mul64(magnitude(f.Num), uint64(g.Den))
	rhi, rlo := bits.Mul64(magnitude(g.Num), uint64(f.Den))
	c := cmp.Or(cmp.Compare(lhi, rhi), cmp.Compare(llo, rlo))
	if f.Num < 0 {
		return -c
	}
	return c
}

func sign(n int) int { return cmp.Compare(n, 0) }

// magnitude returns |n|, including for math.MinInt.
func magnitude(n int) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

func (f Fraction) Equal(g Fraction) bool { return f.Cmp(g) == 0 }

func (f Fraction) Float64() float64 { return float64(f.Num) / float64(f.Den) }

// Int returns f truncated towards zero.
func (f Fraction) Int() int { return f.Num / f.Den }

func (f Fraction) String() string { return fmt.Sprintf("%d/%d", f.Num, f.Den) }

// gcd returns the positive greatest common divisor of a and b, or 1 if both are zero.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	switch {
	case a < 0:
		return -a
	case a == 0:
		return 1
	}
	return a
}

// Pow returns base**exp by repeated squaring. Negative exponents truncate towards zero like
// integer division: Pow(2, -1) is 0, Pow(-1, -3) is -1.
func Pow(base, exp int) int {
	switch {
	case base == 1:
		return 1
	case base == -1:
		if exp&1 != 0 {
			return -1
		}
		return 1
	case exp < 0:
		if base == 0 {
			panic("fraction: zero to a negative power")
		}
		return 0
	}
	result := 1
	for exp > 0 {
		if exp&1 != 0 {
			result *= base
		}
		exp >>= 1
		base *= base
	}
	return result
}
