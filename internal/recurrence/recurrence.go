package recurrence

import (
	"time"

	"taskmill/internal/domain"
)

// Next computes the first occurrence of the rule strictly after from. The
// second return value is false when the rule has no further occurrence, which
// happens once the computed candidate would land past EndDate.
func Next(r domain.Recurrence, from time.Time) (time.Time, bool) {
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}

	var cand time.Time
	switch r.Frequency {
	case domain.FrequencyWeekly:
		cand = nextWeekly(r, from, interval)
	case domain.FrequencyMonthly:
		cand = nextMonthly(r, from, interval)
	default:
		cand = nextDaily(r, from, interval)
	}

	if r.EndDate != nil && dateOnly(cand).After(dateOnly(*r.EndDate)) {
		return time.Time{}, false
	}
	return cand, true
}

// InitialNext computes the first run of a newly created rule. A rule whose
// start is already in the past schedules forward from now instead of
// replaying from StartDate, so new automations never start with a backlog.
func InitialNext(r domain.Recurrence, now time.Time) (time.Time, bool) {
	ref := startAt(r, now).Add(-time.Nanosecond)
	if ref.Before(now) {
		ref = now
	}
	return Next(r, ref)
}

func nextDaily(r domain.Recurrence, from time.Time, interval int) time.Time {
	cand := withTimeOfDay(from, r.TimeOfDay)
	if !cand.After(from) {
		cand = cand.AddDate(0, 0, interval)
	}
	if start := startAt(r, from); cand.Before(start) {
		// Jump straight to the first on-interval day at or after the start.
		short := daysBetween(cand, start)
		steps := (short + interval - 1) / interval
		cand = cand.AddDate(0, 0, steps*interval)
	}
	return cand
}

func nextWeekly(r domain.Recurrence, from time.Time, interval int) time.Time {
	days := weekdaySet(r.WeeklyDays)
	if len(days) == 0 {
		// An empty weekday set is rejected at validation; fall back to the
		// same weekday next week rather than spinning.
		days[from.Weekday()] = true
	}

	cand := withTimeOfDay(from, r.TimeOfDay)
	if !cand.After(from) {
		cand = cand.AddDate(0, 0, 1)
	}
	for !days[cand.Weekday()] {
		cand = cand.AddDate(0, 0, 1)
	}

	if start := startAt(r, from); cand.Before(start) {
		cand = start
		for !days[cand.Weekday()] {
			cand = cand.AddDate(0, 0, 1)
		}
	}

	// The interval multiplies whole weeks, not per-weekday matches.
	if interval > 1 {
		cand = cand.AddDate(0, 0, (interval-1)*7)
	}
	return cand
}

func nextMonthly(r domain.Recurrence, from time.Time, interval int) time.Time {
	start := startAt(r, from)

	// Seed with min(day, 28) so the candidate exists in every month.
	seed := r.MonthlyDay
	if seed > 28 {
		seed = 28
	}
	y, m, _ := from.Date()
	cand := monthDay(y, m, seed, r.TimeOfDay, from.Location())

	if !cand.After(from) || cand.Before(start) {
		cand = monthCandidate(y, m+1, r, from.Location())
	} else if r.MonthlyDay > 28 && r.MonthEndRule == domain.MonthEndUseLastDay {
		cand = monthDay(y, m, lastDayOfMonth(y, m), r.TimeOfDay, from.Location())
	}

	if cand.Before(start) {
		short := monthsBetween(cand, start)
		steps := (short + interval - 1) / interval
		if steps < 1 {
			steps = 1
		}
		cy, cm, _ := cand.Date()
		cand = monthCandidate(cy, cm+time.Month(steps*interval), r, from.Location())
		if cand.Before(start) {
			cand = monthCandidate(cy, cm+time.Month((steps+1)*interval), r, from.Location())
		}
	}
	return cand
}

// monthCandidate places the rule's day within the month of (y, m), resolving
// day-of-month overflow per the month-end rule.
func monthCandidate(y int, m time.Month, r domain.Recurrence, loc *time.Location) time.Time {
	norm := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	y, m, _ = norm.Date()

	last := lastDayOfMonth(y, m)
	day := r.MonthlyDay
	if r.MonthEndRule == domain.MonthEndUseLastDay && r.MonthlyDay > 28 {
		day = last
	} else if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return monthDay(y, m, day, r.TimeOfDay, loc)
}

func monthDay(y int, m time.Month, day int, tod domain.TimeOfDay, loc *time.Location) time.Time {
	return time.Date(y, m, day, tod.Hour, tod.Minute, 0, 0, loc)
}

func lastDayOfMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func withTimeOfDay(t time.Time, tod domain.TimeOfDay) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, tod.Hour, tod.Minute, 0, 0, t.Location())
}

// startAt is the rule's inclusive lower bound at its time of day, in the
// caller's location.
func startAt(r domain.Recurrence, ref time.Time) time.Time {
	y, m, d := r.StartDate.Date()
	return time.Date(y, m, d, r.TimeOfDay.Hour, r.TimeOfDay.Minute, 0, 0, ref.Location())
}

func weekdaySet(days []time.Weekday) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts civil days from a to b. DST shifts are under an hour a
// day, so rounding the difference absorbs them.
func daysBetween(a, b time.Time) int {
	d := dateOnly(b).Sub(dateOnly(a))
	return int((d + 12*time.Hour) / (24 * time.Hour))
}

func monthsBetween(a, b time.Time) int {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return (by-ay)*12 + int(bm-am)
}
