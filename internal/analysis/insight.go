package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Insight is the narrative half of a course analysis: a one-sentence
// summary plus a risk tier.
type Insight struct {
	Summary string `json:"summary"`
	Risk    Risk   `json:"risk"`
}

// SentinelSummary is returned by ParseInsight when the model output
// cannot be decoded at all.
const SentinelSummary = "Analysis unavailable at this time."

// ParseInsight decodes the raw model output into an Insight. Models
// frequently wrap the JSON object in a markdown code fence despite
// instructions; the fence lines are stripped before decoding. The
// function never fails: undecodable input yields a fixed Medium-risk
// sentinel. The Risk field is passed through as-is and must be checked
// against the known tiers by the caller.
func ParseInsight(raw string) Insight {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) >= 2 {
			lines = lines[1 : len(lines)-1]
		}
		text = strings.Join(lines, "\n")
	}

	var insight Insight
	if err := json.Unmarshal([]byte(text), &insight); err != nil {
		return Insight{Summary: SentinelSummary, Risk: RiskMedium}
	}
	return insight
}

// BuildPrompt renders the study-coach prompt for a single course. The
// model is instructed to answer with a bare two-field JSON object.
func BuildPrompt(courseName string, totalHoursRequired, studiedHours float64, m CourseMetrics) string {
	pace := "Deadline passed"
	if m.DailyHoursNeeded != nil {
		pace = fmt.Sprintf("%g", *m.DailyHoursNeeded)
	}
	return fmt.Sprintf(`You are a study coach AI assistant. Analyze the student's course progress below
and return ONLY a valid JSON object - no markdown, no explanation, no extra text.

Course: %s
Total hours required: %g
Hours studied so far: %g
Hours remaining: %g
Progress: %g%%
Days until deadline: %d
Daily study hours needed to finish on time: %s

Return exactly this JSON:
{
  "summary": "<one motivating sentence about their progress and what they need to do>",
  "risk": "<exactly one of: Low, Medium, High>"
}`, courseName, totalHoursRequired, studiedHours, m.HoursRemaining, m.ProgressPct, m.DaysLeft, pace)
}

// FallbackSummary is the templated sentence used when the generative
// call itself fails.
func FallbackSummary(m CourseMetrics) string {
	if m.DailyHoursNeeded == nil {
		return "The deadline for this course has passed. Review your plan and set a new target."
	}
	return fmt.Sprintf("Keep going! You need %gh/day to finish on time.", *m.DailyHoursNeeded)
}
