package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DisplayDateLayout is the month/day/year form used when a date is rendered.
const DisplayDateLayout = "01/02/2006"

// dayFirstLayouts are tried in order. Ambiguous numeric dates resolve day first.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2/1/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05-07:00",
}

// CalendarDate is a date without time of day. The zero value is "no date".
type CalendarDate struct {
	t     time.Time
	valid bool
}

// NewCalendarDate builds a valid date in UTC.
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// ParseDayFirst parses s using the day-before-month convention.
func ParseDayFirst(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, fmt.Errorf("empty date")
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewCalendarDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return CalendarDate{}, fmt.Errorf("unrecognised date %q", s)
}

func (d CalendarDate) Valid() bool { return d.valid }

func (d CalendarDate) Time() time.Time { return d.t }

// Display renders the date as MM/DD/YYYY, or "" when absent.
func (d CalendarDate) Display() string {
	if !d.valid {
		return ""
	}
	return d.t.Format(DisplayDateLayout)
}

// ISOWeek returns the ISO 8601 week number.
func (d CalendarDate) ISOWeek() int {
	_, week := d.t.ISOWeek()
	return week
}

func (d CalendarDate) Month() int { return int(d.t.Month()) }

func (d CalendarDate) Quarter() int { return (int(d.t.Month())-1)/3 + 1 }

// DaysUntil returns the whole days elapsed from d to now, floored. now is
// read as wall clock time in its own location.
func (d CalendarDate) DaysUntil(now time.Time) NullableFloat {
	if !d.valid {
		return NotApplicable()
	}
	return Float(math.Floor(WallClock(now).Sub(d.t).Hours() / 24))
}

// WallClock keeps the date and time of day of t and drops its zone.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format("2006-01-02") + `"`), nil
}
