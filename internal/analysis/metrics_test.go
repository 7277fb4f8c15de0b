package analysis

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeMetricsOnTrackCourse(t *testing.T) {
	today := date(2026, time.March, 1)
	deadline := date(2026, time.March, 21)

	m := ComputeMetrics(100, deadline, 40, today)

	if m.HoursRemaining != 60 {
		t.Fatalf("expected 60 hours remaining, got %v", m.HoursRemaining)
	}
	if m.DaysLeft != 20 {
		t.Fatalf("expected 20 days left, got %d", m.DaysLeft)
	}
	if m.DailyHoursNeeded == nil {
		t.Fatal("expected a daily pace for a future deadline")
	}
	if *m.DailyHoursNeeded != 3 {
		t.Fatalf("expected pace 3, got %v", *m.DailyHoursNeeded)
	}
	if m.ProgressPct != 40 {
		t.Fatalf("expected progress 40, got %v", m.ProgressPct)
	}
}

func TestComputeMetricsPaceRounding(t *testing.T) {
	today := date(2026, time.March, 1)
	deadline := date(2026, time.March, 4)

	m := ComputeMetrics(10, deadline, 0, today)

	// 10h over 3 days rounds to 3.33.
	if m.DailyHoursNeeded == nil || *m.DailyHoursNeeded != 3.33 {
		t.Fatalf("expected pace 3.33, got %v", m.DailyHoursNeeded)
	}
}

func TestComputeMetricsProgressRounding(t *testing.T) {
	today := date(2026, time.March, 1)
	deadline := date(2026, time.March, 10)

	m := ComputeMetrics(3, deadline, 1, today)

	// 1/3 of the course is 33.3%.
	if m.ProgressPct != 33.3 {
		t.Fatalf("expected progress 33.3, got %v", m.ProgressPct)
	}
}

func TestComputeMetricsDeadlinePassed(t *testing.T) {
	today := date(2026, time.March, 10)
	deadline := date(2026, time.March, 1)

	m := ComputeMetrics(50, deadline, 10, today)

	if m.DaysLeft != -9 {
		t.Fatalf("expected -9 days left, got %d", m.DaysLeft)
	}
	if m.DailyHoursNeeded != nil {
		t.Fatalf("expected nil pace past the deadline, got %v", *m.DailyHoursNeeded)
	}
}

func TestComputeMetricsDeadlineToday(t *testing.T) {
	today := date(2026, time.March, 10)

	m := ComputeMetrics(50, today, 10, today)

	if m.DaysLeft != 0 {
		t.Fatalf("expected 0 days left, got %d", m.DaysLeft)
	}
	if m.DailyHoursNeeded != nil {
		t.Fatal("expected nil pace when the deadline is today")
	}
}

func TestComputeMetricsIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, time.March, 1, 23, 45, 0, 0, time.UTC)
	deadline := time.Date(2026, time.March, 2, 0, 5, 0, 0, time.UTC)

	m := ComputeMetrics(10, deadline, 0, today)

	if m.DaysLeft != 1 {
		t.Fatalf("expected a whole-day difference of 1, got %d", m.DaysLeft)
	}
}

func TestComputeMetricsOverstudiedClampsRemaining(t *testing.T) {
	today := date(2026, time.March, 1)
	deadline := date(2026, time.March, 11)

	m := ComputeMetrics(20, deadline, 30, today)

	if m.HoursRemaining != 0 {
		t.Fatalf("expected hours remaining clamped to 0, got %v", m.HoursRemaining)
	}
	if m.ProgressPct != 150 {
		t.Fatalf("expected progress 150 for an over-studied course, got %v", m.ProgressPct)
	}
}

func TestComputeMetricsZeroHoursRequired(t *testing.T) {
	today := date(2026, time.March, 1)
	deadline := date(2026, time.March, 11)

	m := ComputeMetrics(0, deadline, 5, today)

	if m.ProgressPct != 0 {
		t.Fatalf("expected progress 0 when no hours are required, got %v", m.ProgressPct)
	}
	if m.HoursRemaining != 0 {
		t.Fatalf("expected 0 hours remaining, got %v", m.HoursRemaining)
	}
}
