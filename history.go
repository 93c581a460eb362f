package shisan

import (
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of values, each associated with one
// date. Dates are unique and the series is always sorted.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of points in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the most recent date and value, or false for an empty
// history.
func (h *History[T]) Latest() (Date, T, bool) {
	last := len(h.days) - 1
	if last < 0 {
		var zero T
		return Date{}, zero, false
	}
	return h.days[last], h.values[last], true
}

// Append adds a point to the history. An existing value at that date is
// overwritten: the last written data wins.
func (h *History[T]) Append(on Date, v T) *History[T] {
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = v
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, v)
	sort.Sort(chronological[T]{h})
	return h
}

// chronological is a private adapter to sort days and values together.
type chronological[T any] struct{ *History[T] }

func (s chronological[T]) Len() int           { return len(s.days) }
func (s chronological[T]) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Get returns the value at exactly 'day'.
func (h *History[T]) Get(day Date) (T, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// search returns the insertion index of day in the sorted days.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// ValueAsOf returns the value on a given day, or the most recent value
// before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Closest returns the value whose date is nearest to 'day' within the given
// number of days in either direction. Ties go to the earlier date. Price
// series have weekend and holiday holes; a lookup on a Sunday should find
// Friday's close.
func (h *History[T]) Closest(day Date, within int) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}

	bestDist := within + 1
	best := -1
	if i > 0 {
		if d := dayDistance(h.days[i-1], day); d < bestDist {
			best, bestDist = i-1, d
		}
	}
	if i < len(h.days) {
		if d := dayDistance(h.days[i], day); d < bestDist {
			best = i
		}
	}
	if best < 0 {
		var zero T
		return zero, false
	}
	return h.values[best], true
}

// Values returns an iterator over all date/value pairs in chronological
// order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// dayDistance returns the number of days between two dates, always
// nonnegative.
func dayDistance(a, b Date) int {
	d := int(b.time().Sub(a.time()).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
