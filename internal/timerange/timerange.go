// Package timerange keeps the per-day min/max completion timestamps and
// derives the start anchor every elapsed time of a day is measured from.
package timerange

import (
	"sort"
	"time"

	"aoc-star-charts/internal/model"
)

// DefaultStartHour is the local hour each day's elapsed times are measured from.
const DefaultStartHour = 7

// PartRange holds the bounds observed for one part of one day.
type PartRange struct {
	Seen bool  `json:"seen"`
	Min  int64 `json:"min"`
	Max  int64 `json:"max"`
}

func (r *PartRange) observe(ts int64) {
	if !r.Seen {
		r.Seen = true
		r.Min = ts
		r.Max = ts
		return
	}
	if ts < r.Min {
		r.Min = ts
	}
	if ts > r.Max {
		r.Max = ts
	}
}

type DayTimeRange struct {
	Day   int       `json:"day"`
	Star1 PartRange `json:"star1"`
	Star2 PartRange `json:"star2"`
}

// Part returns the range of the given part. Unknown parts yield nil.
func (d *DayTimeRange) Part(p model.Part) *PartRange {
	switch p {
	case model.Part1:
		return &d.Star1
	case model.Part2:
		return &d.Star2
	default:
		return nil
	}
}

// Anchor is the timestamp the day start is derived from: the part-1 minimum,
// or the part-2 minimum for days without any part-1 completion.
func (d *DayTimeRange) Anchor() (int64, bool) {
	if d.Star1.Seen {
		return d.Star1.Min, true
	}
	if d.Star2.Seen {
		return d.Star2.Min, true
	}
	return 0, false
}

// Tracker accumulates DayTimeRanges over a normalization pass.
type Tracker struct {
	days map[int]*DayTimeRange
}

func NewTracker() *Tracker {
	return &Tracker{days: make(map[int]*DayTimeRange)}
}

// Touch registers a day even if no valid timestamp is ever observed for it.
func (t *Tracker) Touch(day int) *DayTimeRange {
	r, ok := t.days[day]
	if !ok {
		r = &DayTimeRange{Day: day}
		t.days[day] = r
	}
	return r
}

func (t *Tracker) Observe(day int, p model.Part, ts int64) {
	pr := t.Touch(day).Part(p)
	if pr == nil {
		return
	}
	pr.observe(ts)
}

func (t *Tracker) Range(day int) (DayTimeRange, bool) {
	r, ok := t.days[day]
	if !ok {
		return DayTimeRange{}, false
	}
	return *r, true
}

// Days returns the registered days in ascending order.
func (t *Tracker) Days() []int {
	out := make([]int, 0, len(t.days))
	for d := range t.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Ranges returns a copy of every range, ordered by day.
func (t *Tracker) Ranges() []DayTimeRange {
	days := t.Days()
	out := make([]DayTimeRange, 0, len(days))
	for _, d := range days {
		out = append(out, *t.days[d])
	}
	return out
}

// StartOffset returns the epoch seconds of hour:00:00 in loc on the calendar
// day of the day's anchor timestamp.
func (t *Tracker) StartOffset(day int, loc *time.Location, hour int) (int64, bool) {
	r, ok := t.days[day]
	if !ok {
		return 0, false
	}
	anchor, ok := r.Anchor()
	if !ok {
		return 0, false
	}
	return StartOf(anchor, loc, hour), true
}

func StartOf(anchor int64, loc *time.Location, hour int) int64 {
	if loc == nil {
		loc = time.Local
	}
	a := time.Unix(anchor, 0).In(loc)
	return time.Date(a.Year(), a.Month(), a.Day(), hour, 0, 0, 0, loc).Unix()
}

// Elapsed is ts-start clamped at zero.
func Elapsed(ts int64, start int64) int64 {
	if ts < start {
		return 0
	}
	return ts - start
}
