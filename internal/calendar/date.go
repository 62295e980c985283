package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidDate is returned when a year/month/day triple is not a real calendar day.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrYearOutOfRange is returned by YearPolicy.Check.
	ErrYearOutOfRange = errors.New("year out of range")
)

// Date is a day in the proleptic Gregorian calendar.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// NewDate validates and returns a Date.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return d, nil
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Today returns the current date in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc))
}

// dateFieldWidths are the exact digit counts of YYYY, MM and DD.
var dateFieldWidths = [3]int{4, 2, 2}

// ParseDate parses YYYY-MM-DD. A leading '-' marks a year before year 1.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		if len(p) != dateFieldWidths[i] || !allDigits(p) {
			return Date{}, fmt.Errorf("%w: bad component %q in %q", ErrInvalidDate, p, s)
		}
		nums[i], _ = strconv.Atoi(p)
	}
	if neg {
		nums[0] = -nums[0]
	}

	return NewDate(nums[0], nums[1], nums[2])
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Valid reports whether the month and day exist in the given year.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// Weekday is shorthand for WeekdayOf(d).
func (d Date) Weekday() Weekday {
	return WeekdayOf(d)
}

// Time returns noon UTC on d. Noon keeps the day stable when the value is
// shifted into other zones for display.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	if d.Year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Long formats d like "January 2, 2006".
func (d Date) Long() string {
	if d.Month < 1 || d.Month > 12 {
		return d.String()
	}
	return fmt.Sprintf("%s %d, %d", time.Month(d.Month), d.Day, d.Year)
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year, or 0 for an
// invalid month.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	default:
		return 0
	}
}

// YearPolicy bounds the years accepted from users. A zero Max means the
// current year.
type YearPolicy struct {
	Min int
	Max int
}

// Check returns ErrYearOutOfRange if year falls outside the policy.
func (p YearPolicy) Check(year int) error {
	upper := p.Max
	if upper == 0 {
		upper = time.Now().UTC().Year()
	}
	if year < p.Min || year > upper {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, year, p.Min, upper)
	}
	return nil
}
