package types

import (
	"github.com/google/uuid"

	"github.com/yungbote/studypulse-backend/internal/analysis"
)

// CourseAnalysis is the per-course dashboard record. It merges the
// course's stored fields with the derived metrics and the AI insight.
// Built fresh per request, never persisted.
type CourseAnalysis struct {
	CourseID           uuid.UUID        `json:"course_id"`
	Course             string           `json:"course"`
	Deadline           string           `json:"deadline"`
	HoursStudied       float64          `json:"hours_studied"`
	HoursRemaining     float64          `json:"hours_remaining"`
	TotalHoursRequired float64          `json:"total_hours_required"`
	ProgressPct        float64          `json:"progress_pct"`
	DaysLeft           int              `json:"days_left"`
	DailyHoursNeeded   *float64         `json:"daily_hours_needed"`
	AI                 analysis.Insight `json:"ai"`
}
