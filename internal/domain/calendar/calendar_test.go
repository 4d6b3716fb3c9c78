package calendar_test

import (
	"testing"
	"time"

	"github.com/okian/ringclock/internal/domain/calendar"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMonthDayCount(t *testing.T) {
	Convey("Given the literal leap rule", t, func() {
		Convey("February follows the inverted predicate", func() {
			// The literal predicate only grants 29 days to centuries not divisible
			// by 400. These are pinned on purpose: the Gregorian answers would be
			// 29, 28, 29 and 28.
			So(calendar.MonthDayCount(2000, 2), ShouldEqual, 28)
			So(calendar.MonthDayCount(1900, 2), ShouldEqual, 29)
			So(calendar.MonthDayCount(2024, 2), ShouldEqual, 28)
			So(calendar.MonthDayCount(2023, 2), ShouldEqual, 28)
		})

		Convey("Other months use the fixed table", func() {
			So(calendar.MonthDayCount(2023, 1), ShouldEqual, 31)
			So(calendar.MonthDayCount(2023, 4), ShouldEqual, 30)
			So(calendar.MonthDayCount(2023, 9), ShouldEqual, 30)
			So(calendar.MonthDayCount(2023, 12), ShouldEqual, 31)
		})

		Convey("Every valid month yields 28..31", func() {
			for year := 1890; year <= 2110; year++ {
				for month := 1; month <= 12; month++ {
					n := calendar.MonthDayCount(year, month)
					So(n, ShouldBeBetweenOrEqual, 28, 31)
				}
			}
		})

		Convey("Months outside 1..12 panic", func() {
			So(func() { calendar.MonthDayCount(2023, 0) }, ShouldPanic)
			So(func() { calendar.MonthDayCount(2023, 13) }, ShouldPanic)
		})
	})

	Convey("Given the Gregorian leap rule", t, func() {
		days := func(y int) int { return calendar.MonthDayCountWith(calendar.GregorianLeapRule, y, 2) }

		So(days(2000), ShouldEqual, 29)
		So(days(1900), ShouldEqual, 28)
		So(days(2024), ShouldEqual, 29)
		So(days(2023), ShouldEqual, 28)
	})

	Convey("Given leap rule names", t, func() {
		rule, err := calendar.RuleByName("gregorian")
		So(err, ShouldBeNil)
		So(rule(2024), ShouldBeTrue)

		rule, err = calendar.RuleByName("")
		So(err, ShouldBeNil)
		So(rule(1900), ShouldBeTrue)

		_, err = calendar.RuleByName("julian")
		So(err, ShouldNotBeNil)
	})
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 10, 15, 30, 0, time.UTC)
	got := calendar.FromTime(ts)
	want := calendar.Sample{Year: 2024, Month: 3, Day: 9, Hour: 10, Minute: 15, Second: 30}
	if got != want {
		t.Fatalf("FromTime = %+v, want %+v", got, want)
	}
	if got.String() != "2024-03-09 10:15:30" {
		t.Fatalf("String = %q", got.String())
	}
}
