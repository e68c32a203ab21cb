package daterange

import (
	"errors"
	"time"
)

var (
	ErrCheckOutNotAfterCheckIn = errors.New("check-out date must be after check-in date")
)

// Range is an inclusive interval of whole-day stays. Both bounds count as
// occupied nights, which is why every overlap check in the module goes through
// Overlaps instead of open-ended comparisons.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a Range and enforces the stay invariant: the end date must be
// strictly after the start date. A zero-length stay is rejected.
func New(start, end time.Time) (Range, error) {
	if !end.After(start) {
		return Range{}, ErrCheckOutNotAfterCheckIn
	}

	return Range{Start: truncate(start), End: truncate(end)}, nil
}

// Parse builds a Range from two YYYY-MM-DD strings.
func Parse(layout, start, end string) (Range, error) {
	startDate, err := time.Parse(layout, start)
	if err != nil {
		return Range{}, err
	}

	endDate, err := time.Parse(layout, end)
	if err != nil {
		return Range{}, err
	}

	return New(startDate, endDate)
}

// Overlaps is the canonical interval test: two inclusive ranges share at least
// one day when aStart <= bEnd AND aEnd >= bStart. Touching endpoints overlap.
func (r Range) Overlaps(other Range) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Contains reports whether the given day falls inside the range, bounds included.
func (r Range) Contains(day time.Time) bool {
	day = truncate(day)

	return !day.Before(r.Start) && !day.After(r.End)
}

// Nights returns the number of nights a stay over this range occupies.
func (r Range) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
