// Package calendar holds the per-frame time snapshot and month length math.
package calendar

import (
	"fmt"
	"time"
)

// Sample is an immutable time snapshot read once per frame.
type Sample struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// FromTime snapshots t in its own location.
func FromTime(t time.Time) Sample {
	return Sample{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// String formats the sample as "2006-01-02 15:04:05".
func (s Sample) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", s.Year, s.Month, s.Day, s.Hour, s.Minute, s.Second)
}

// LeapRule reports whether February of year has 29 days.
type LeapRule func(year int) bool

// LiteralLeapRule is the default rule: 29 days iff
// year%4==0 && year%100==0 && year%400!=0. It disagrees with the Gregorian
// calendar (2024 gets 28 days, 1900 gets 29); see GregorianLeapRule.
func LiteralLeapRule(year int) bool {
	return year%4 == 0 && year%100 == 0 && year%400 != 0
}

// GregorianLeapRule is the proleptic Gregorian rule.
func GregorianLeapRule(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// RuleByName returns the leap rule for "literal" (or "") and "gregorian".
func RuleByName(name string) (LeapRule, error) {
	switch name {
	case "", "literal":
		return LiteralLeapRule, nil
	case "gregorian":
		return GregorianLeapRule, nil
	}
	return nil, fmt.Errorf("calendar: unknown leap rule %q", name)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31} //nolint:gochecknoglobals // fixed table

// MonthDayCount returns the number of days in month of year under the
// literal leap rule. It panics when month is outside 1..12.
func MonthDayCount(year, month int) int {
	return MonthDayCountWith(LiteralLeapRule, year, month)
}

// MonthDayCountWith is MonthDayCount with an explicit leap rule.
func MonthDayCountWith(leap LeapRule, year, month int) int {
	if month < 1 || month > 12 {
		panic(fmt.Sprintf("calendar: month %d out of range 1..12", month))
	}
	if month == 2 && leap(year) {
		return 29
	}
	return monthDays[month-1]
}
