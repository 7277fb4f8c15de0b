package analysis

import (
	"math"
	"time"
)

// CourseMetrics is the derived study plan for a single course. It is
// computed fresh on every dashboard request and never persisted.
type CourseMetrics struct {
	HoursRemaining   float64
	DaysLeft         int
	DailyHoursNeeded *float64
	ProgressPct      float64
}

// ComputeMetrics derives the study plan from a course's targets and the
// hours logged so far. DailyHoursNeeded is nil when the deadline is today
// or already passed. ProgressPct is 0 when no hours are required and is
// not capped above 100 when the course is over-studied.
func ComputeMetrics(totalHoursRequired float64, deadline time.Time, studiedHours float64, today time.Time) CourseMetrics {
	hoursRemaining := totalHoursRequired - studiedHours
	if hoursRemaining < 0 {
		hoursRemaining = 0
	}

	daysLeft := daysBetween(today, deadline)

	var dailyHoursNeeded *float64
	if daysLeft > 0 {
		pace := round2(hoursRemaining / float64(daysLeft))
		dailyHoursNeeded = &pace
	}

	progressPct := 0.0
	if totalHoursRequired > 0 {
		progressPct = round1(studiedHours / totalHoursRequired * 100)
	}

	return CourseMetrics{
		HoursRemaining:   hoursRemaining,
		DaysLeft:         daysLeft,
		DailyHoursNeeded: dailyHoursNeeded,
		ProgressPct:      progressPct,
	}
}

// daysBetween returns the whole-day calendar difference to - from,
// ignoring the time-of-day component of both.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places for display fields.
func Round2(v float64) float64 {
	return round2(v)
}
