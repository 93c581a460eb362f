package shisan

import "fmt"

// Percent is a relative change in percent points. It comes out of float64
// division, so it is never compared with ==.
type Percent float64

// Equal compares with display precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", p) }

// SignedString renders with an explicit sign, and zero as "-" like
// Money.SignedString, so flat rows read as flat in reports.
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", p)
	if s == "+0.00%" {
		return "-"
	}
	return s
}
