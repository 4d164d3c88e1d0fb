package datekey

import "time"

// Range is an inclusive span of calendar days.
type Range struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

// NewRange builds a range from two day values.
func NewRange(start, end Day) Range {
	return Range{Start: start, End: end}
}

// ParseRange builds a range from two textual days in any accepted format.
func ParseRange(start, end string) Range {
	return Range{Start: Parse(start), End: Parse(end)}
}

// Valid reports whether both bounds are valid and Start is not after End.
func (r Range) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && !r.Start.After(r.End)
}

// Contains reports whether d lies within the range, bounds included.
// Invalid days and invalid ranges never match.
func (r Range) Contains(d Day) bool {
	if !r.Valid() || !d.Valid() {
		return false
	}
	k := d.Key()
	return k >= r.Start.Key() && k <= r.End.Key()
}

// Days lists every day of the range in ascending order.
func (r Range) Days() []Day {
	if !r.Valid() {
		return nil
	}
	var out []Day
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Len returns the number of days in the range.
func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.End.date.DaysSince(r.Start.date) + 1
}

// LastNDays returns the n days ending on (and including) end.
func LastNDays(end Day, n int) Range {
	if n < 1 || !end.Valid() {
		return Range{}
	}
	return Range{Start: end.AddDays(-(n - 1)), End: end}
}

// Month returns the full calendar month containing d.
func Month(d Day) Range {
	if !d.Valid() {
		return Range{}
	}
	first := New(d.Year(), d.Month(), 1)
	return Range{Start: first, End: first.AddMonths(1).AddDays(-1)}
}

// ThisMonth is the calendar month containing today.
func ThisMonth(today Day) Range {
	return Month(today)
}

// LastMonth is the calendar month before the one containing today.
func LastMonth(today Day) Range {
	if !today.Valid() {
		return Range{}
	}
	return Month(New(today.Year(), today.Month(), 1).AddDays(-1))
}

// MonthOf returns the range for a numeric year and month.
func MonthOf(year int, month time.Month) Range {
	return Month(New(year, month, 1))
}
