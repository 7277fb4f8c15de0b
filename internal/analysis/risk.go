package analysis

// Risk is the coarse deadline-completion classification attached to a
// course's analysis.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Pace thresholds (hours per day) for the rule-based classifier.
const (
	mediumPaceThreshold = 2.0
	highPaceThreshold   = 5.0
)

// ValidRisk reports whether s is one of the three known tiers.
func ValidRisk(s string) bool {
	switch Risk(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ClassifyRisk is the deterministic fallback used when the generative
// call fails or returns an unknown tier.
func ClassifyRisk(daysLeft int, dailyHoursNeeded *float64) Risk {
	if daysLeft <= 0 {
		return RiskHigh
	}
	// Unreachable via ComputeMetrics (positive days always yields a pace),
	// kept for callers that classify partial data.
	if dailyHoursNeeded == nil {
		return RiskLow
	}
	switch {
	case *dailyHoursNeeded > highPaceThreshold:
		return RiskHigh
	case *dailyHoursNeeded > mediumPaceThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
