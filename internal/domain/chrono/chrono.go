// Package chrono provides fractional-year date arithmetic, comparison and
// formatting for the proleptic timeline axis. Negative years are BCE; year 0
// does not exist.
package chrono

import (
	"errors"
	"fmt"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Date is a partial calendar date. Month and Day are optional (0 = unset);
// Day may only be set when Month is set.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Validate checks the dependent-order invariant and field ranges.
func (d Date) Validate() error {
	if d.Year == 0 {
		return errors.New("year is required (year 0 does not exist)")
	}
	if d.Month < 0 || d.Month > 12 {
		return fmt.Errorf("month out of range: %d", d.Month)
	}
	if d.Day < 0 || d.Day > 31 {
		return fmt.Errorf("day out of range: %d", d.Day)
	}
	if d.Day != 0 && d.Month == 0 {
		return errors.New("day requires month")
	}
	return nil
}

// Fraction converts the date to its fractional-year axis position:
// year + (month-1)/12 + (day-1)/365. Unset month or day contribute zero.
func (d Date) Fraction() float64 {
	return FractionalYear(d.Year, d.Month, d.Day)
}

// FractionalYear is the single year/month/day to axis-position conversion
// shared by layout and formatting.
func FractionalYear(year, month, day int) float64 {
	fy := float64(year)
	if month > 0 {
		fy += float64(month-1) / 12
	}
	if day > 0 {
		fy += float64(day-1) / 365
	}
	return fy
}

// Compare orders two dates chronologically. It returns -1, 0 or 1.
func Compare(a, b Date) int {
	fa, fb := a.Fraction(), b.Fraction()
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// MonthName returns the English month name, or "" for an unset month.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// FormatYear renders a year for axis labels. With withEra set, negative
// years get a BCE suffix and positive years a CE suffix; otherwise the bare
// number is returned.
func FormatYear(year int, withEra bool) string {
	if !withEra {
		return fmt.Sprintf("%d", year)
	}
	if year < 0 {
		return fmt.Sprintf("%d BCE", -year)
	}
	return fmt.Sprintf("%d CE", year)
}

// Format renders a date for display: "1945", "March 1945" or "4 March 1945".
// BCE years keep their sign handling from FormatYear.
func (d Date) Format() string {
	year := FormatYear(d.Year, d.Year < 0)
	switch {
	case d.Month == 0:
		return year
	case d.Day == 0:
		return fmt.Sprintf("%s %s", MonthName(d.Month), year)
	default:
		return fmt.Sprintf("%d %s %s", d.Day, MonthName(d.Month), year)
	}
}
