package calendar

import (
	"encoding/json"
	"time"

	"github.com/i474232898/historical-day/internal/common"
)

// Weekday is a day of the week. Only the seven constants below are valid.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// zellerOrder maps the Zeller index h to a weekday. h = 0 is Saturday.
var zellerOrder = [7]Weekday{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

// String returns the English name of the day.
func (w Weekday) String() string {
	return weekdayNames[common.FloorMod(int(w), 7)]
}

// Std converts w to the equivalent time.Weekday.
func (w Weekday) Std() time.Weekday {
	return time.Weekday(common.FloorMod(int(w), 7))
}

// MarshalJSON encodes the weekday as its name.
func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// WeekdayOf returns the day of the week of d in the proleptic Gregorian
// calendar using Zeller's congruence. It never fails: d is not validated and a
// result is returned for any integer triple.
func WeekdayOf(d Date) Weekday {
	return zellerOrder[zeller(d.Year, d.Month, d.Day)]
}

// zeller returns Zeller's h in [0, 6]. January and February count as months 13
// and 14 of the previous year.
func zeller(year, month, day int) int {
	if month < 3 {
		month += 12
		year--
	}

	h := day +
		common.FloorDiv(13*(month+1), 5) +
		year +
		common.FloorDiv(year, 4) -
		common.FloorDiv(year, 100) +
		common.FloorDiv(year, 400)

	return common.FloorMod(h, 7)
}
