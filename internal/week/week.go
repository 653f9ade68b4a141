// Package week holds the calendar arithmetic behind report edit windows.
//
// Reports are keyed by ISO-8601 (year, week) pairs, where the year is the ISO
// week-numbering year. Months are converted into the inclusive range of ISO
// weeks touching their first and last day.
package week

import (
	"time"

	"github.com/jinzhu/now"
)

func StartOfMonth(t time.Time) time.Time { return now.With(t).BeginningOfMonth() }

func EndOfMonth(t time.Time) time.Time { return now.With(t).EndOfMonth() }

// ISOWeek returns the ISO week-numbering year and week of t.
func ISOWeek(t time.Time) (year, week int) { return t.ISOWeek() }

// Window is an inclusive range of ISO weeks.
type Window struct {
	Start     time.Time
	End       time.Time
	StartYear int
	StartWeek int
	EndYear   int
	EndWeek   int
}

// Month returns the window covering the calendar month containing t.
func Month(t time.Time) Window {
	w := Window{Start: StartOfMonth(t), End: EndOfMonth(t)}
	w.StartYear, w.StartWeek = ISOWeek(w.Start)
	w.EndYear, w.EndWeek = ISOWeek(w.End)
	return w
}

// LastMonth returns the window of the calendar month before the one containing t.
func LastMonth(t time.Time) Window {
	return Month(StartOfMonth(t).AddDate(0, -1, 0))
}

// Contains reports whether the ISO week (year, week) lies inside w. Weeks are
// compared as (year, week) tuples so windows spanning a year change work.
func (w Window) Contains(year, week int) bool {
	k := key(year, week)
	return k >= key(w.StartYear, w.StartWeek) && k <= key(w.EndYear, w.EndWeek)
}

func key(year, week int) int { return year*100 + week }
