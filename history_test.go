package shisan

import (
	"testing"
	"time"
)

func day(d int) Date { return NewDate(2024, time.June, d) }

func TestHistoryAppendReplacesSameDate(t *testing.T) {
	h := &History[float64]{}
	h.Append(day(3), 10).Append(day(1), 5).Append(day(3), 12)

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if v, ok := h.Get(day(3)); !ok || v != 12 {
		t.Errorf("Get(3rd) = %v, %v, want 12 (last write wins)", v, ok)
	}
	// appended out of order, read back sorted
	on, v, ok := h.Latest()
	if !ok || on != day(3) || v != 12 {
		t.Errorf("Latest() = %s, %v, %v, want 3rd, 12", on, v, ok)
	}
}

func TestHistoryValueAsOf(t *testing.T) {
	h := &History[float64]{}
	h.Append(day(3), 10).Append(day(10), 20)

	testCases := []struct {
		name   string
		on     Date
		want   float64
		wantOK bool
	}{
		{"exact", day(3), 10, true},
		{"between points", day(7), 10, true},
		{"after the last", day(30), 20, true},
		{"before the first", day(1), 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.on)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("ValueAsOf(%s) = %v, %v, want %v, %v", tc.on, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestHistoryClosest(t *testing.T) {
	h := &History[float64]{}
	// a Friday close and the next Monday close
	h.Append(day(7), 10).Append(day(10), 20)

	testCases := []struct {
		name   string
		on     Date
		within int
		want   float64
		wantOK bool
	}{
		{"exact", day(7), 3, 10, true},
		{"saturday finds friday", day(8), 3, 10, true},
		{"sunday finds the nearer monday", day(9), 3, 20, true},
		{"just after monday", day(11), 3, 20, true},
		{"too far", day(20), 3, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.Closest(tc.on, tc.within)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("Closest(%s, %d) = %v, %v, want %v, %v", tc.on, tc.within, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestHistoryClosestTieGoesEarlier(t *testing.T) {
	h := &History[float64]{}
	h.Append(day(7), 10).Append(day(9), 20)

	// day 8 is one day from both points
	if got, ok := h.Closest(day(8), 3); !ok || got != 10 {
		t.Errorf("Closest(tie) = %v, %v, want the earlier 10", got, ok)
	}
}
