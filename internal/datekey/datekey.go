// Package datekey canonicalizes calendar days.
//
// A Day carries no time of day and no zone. Ordering and equality between
// days go through Key (year*10000 + month*100 + day), never through
// timestamp arithmetic, so results do not drift across DST changes or
// between the zone a value was entered in and the zone it is read in.
package datekey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Layout is the canonical textual form of a Day.
const Layout = "2006-01-02"

var (
	isoDay   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDay = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashDay  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// Day is a calendar day. The zero value is invalid.
type Day struct {
	date civil.Date
}

// New returns the day for year, month, day. Out-of-range parts give an invalid Day.
func New(year int, month time.Month, day int) Day {
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return Day{}
	}
	return Day{date: d}
}

// FromTime returns the calendar day of t as seen in t's own location.
func FromTime(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	return Day{date: civil.DateOf(t)}
}

// Today returns the current local calendar day.
func Today() Day {
	return FromTime(time.Now())
}

// Parse accepts YYYY-MM-DD, MM/DD/YYYY, MM-DD-YYYY and RFC 3339 timestamps.
// Anything else, including impossible dates such as 2026-02-30, yields an
// invalid Day.
func Parse(s string) Day {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}
	}
	if m := isoDay.FindStringSubmatch(s); m != nil {
		return fromParts(m[1], m[2], m[3])
	}
	if m := slashDay.FindStringSubmatch(s); m != nil {
		return fromParts(m[3], m[1], m[2])
	}
	if m := dashDay.FindStringSubmatch(s); m != nil {
		return fromParts(m[3], m[1], m[2])
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t.In(time.Local))
	}
	return Day{}
}

func fromParts(year, month, day string) Day {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Day{}
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return Day{}
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return Day{}
	}
	return New(y, time.Month(m), d)
}

// Normalize rewrites any accepted day format as YYYY-MM-DD. It returns ""
// for input Parse rejects.
func Normalize(s string) string {
	return Parse(s).String()
}

// KeyOf is shorthand for Parse(s).Key().
func KeyOf(s string) int {
	return Parse(s).Key()
}

// Valid reports whether d names a real calendar day.
func (d Day) Valid() bool {
	return d.date.IsValid()
}

// Key returns year*10000 + month*100 + day, or 0 for an invalid Day.
func (d Day) Key() int {
	if !d.Valid() {
		return 0
	}
	return d.date.Year*10000 + int(d.date.Month)*100 + d.date.Day
}

// String returns YYYY-MM-DD, or "" for an invalid Day.
func (d Day) String() string {
	if !d.Valid() {
		return ""
	}
	return d.date.String()
}

// Label formats the day as M/D for chart axes.
func (d Day) Label() string {
	if !d.Valid() {
		return ""
	}
	return fmt.Sprintf("%d/%d", int(d.date.Month), d.date.Day)
}

func (d Day) Year() int         { return d.date.Year }
func (d Day) Month() time.Month { return d.date.Month }
func (d Day) DayOfMonth() int   { return d.date.Day }

// Time returns local midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return d.date.In(loc)
}

// AddDays moves d by n days.
func (d Day) AddDays(n int) Day {
	if !d.Valid() {
		return d
	}
	return Day{date: d.date.AddDays(n)}
}

// AddMonths moves d by n calendar months. Overflowing days roll into the
// following month, so Jan 31 + 1 month is Mar 3 in a non-leap year.
func (d Day) AddMonths(n int) Day {
	if !d.Valid() {
		return d
	}
	return FromTime(d.date.In(time.UTC).AddDate(0, n, 0))
}

// Compare returns -1, 0 or +1 by key.
func (d Day) Compare(o Day) int {
	a, b := d.Key(), o.Key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Day) Before(o Day) bool { return d.Key() < o.Key() }
func (d Day) After(o Day) bool  { return d.Key() > o.Key() }
func (d Day) Equal(o Day) bool  { return d.Key() == o.Key() }

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unparseable text
// leaves d invalid rather than failing the decode.
func (d *Day) UnmarshalText(b []byte) error {
	*d = Parse(string(b))
	return nil
}
