package utils

import (
	"math"
	"regexp"
)

// CheckInMetrics is a validated daily check-in. All scoring functions below
// are pure: same metrics in, same outputs out.
type CheckInMetrics struct {
	SleepHours      float64
	Steps           int
	HRV             float64
	PainLevel       int // 0-10
	StressLevel     int // 0-10
	MedicationTaken bool
	Notes           string
}

var (
	weatherPattern      = regexp.MustCompile(`(?i)storm|pressure|rain|weather`)
	inflammatoryPattern = regexp.MustCompile(`(?i)fried|sugar|dessert|alcohol|wine|gluten`)
)

// RiskScore computes the daily flare-risk score on a 5..95 scale.
// Weighted-sum model: pain and stress tiers, sleep and activity deficits,
// HRV readiness, and a medication adjustment, clamped then rounded.
func RiskScore(m CheckInMetrics) int {
	score := 25.0

	switch {
	case m.PainLevel >= 7:
		score += 35
	case m.PainLevel >= 5:
		score += 22
	case m.PainLevel >= 3:
		score += 12
	default:
		score += 4
	}

	switch {
	case m.StressLevel >= 7:
		score += 18
	case m.StressLevel >= 5:
		score += 10
	case m.StressLevel >= 3:
		score += 6
	}

	score += math.Max(0, 7-m.SleepHours) * 4
	score += math.Max(0, float64(5500-m.Steps)) / 300

	switch {
	case m.HRV < 50:
		score += 12
	case m.HRV < 60:
		score += 6
	}

	if m.MedicationTaken {
		score -= 5
	} else {
		score += 18
	}

	return int(math.Round(clampScore(score, 5, 95)))
}

// DetectTriggers returns the trigger labels whose conditions hold, in fixed
// rule order. Labels are distinct per rule, so the result is an ordered set.
func DetectTriggers(m CheckInMetrics) []string {
	var triggers []string

	if m.SleepHours < 6 {
		triggers = append(triggers, "Sleep debt")
	}
	if m.StressLevel >= 6 {
		triggers = append(triggers, "Stress spikes")
	}
	if m.Steps < 4000 {
		triggers = append(triggers, "Low activity")
	}
	if m.HRV < 50 {
		triggers = append(triggers, "Low HRV readiness")
	}
	if !m.MedicationTaken {
		triggers = append(triggers, "Missed medication")
	}
	if m.PainLevel >= 6 {
		triggers = append(triggers, "Joint inflammation")
	}
	if m.Notes != "" {
		if weatherPattern.MatchString(m.Notes) {
			triggers = append(triggers, "Weather shift")
		}
		if inflammatoryPattern.MatchString(m.Notes) {
			triggers = append(triggers, "Inflammatory foods")
		}
	}

	return triggers
}

// DeriveGuidance returns up to four advice lines in fixed rule order, with a
// single maintenance line when nothing fires.
func DeriveGuidance(m CheckInMetrics) []string {
	var guidance []string

	if m.SleepHours < 6.5 {
		guidance = append(guidance, "Lights out by 10pm with gentle neck + shoulder release.")
	}
	if m.PainLevel >= 6 {
		guidance = append(guidance, "Use heat pack for 15 minutes and schedule wrist mobility session.")
	}
	if m.StressLevel >= 6 {
		guidance = append(guidance, "Add two 5-minute breathing breaks to disrupt stress spikes.")
	}
	if !m.MedicationTaken {
		guidance = append(guidance, "Log medication dose now and confirm evening reminder.")
	}
	if m.Steps < 5000 {
		guidance = append(guidance, "Plan two short walks (10 minutes each) to boost circulation.")
	}
	if m.HRV < 55 {
		guidance = append(guidance, "Swap intense workouts for restorative stretching tonight.")
	}

	if len(guidance) == 0 {
		guidance = append(guidance, "Keep hydration steady and continue morning mobility circuit.")
	}
	if len(guidance) > 4 {
		guidance = guidance[:4]
	}
	return guidance
}

// RiskLabel buckets a risk score for display.
func RiskLabel(score int) string {
	switch {
	case score >= 65:
		return "High"
	case score >= 35:
		return "Moderate"
	default:
		return "Low"
	}
}

// ConfidenceLabel is a fixed lookup on how many data sources are connected,
// not a computed statistic.
func ConfidenceLabel(connected, total int) string {
	switch {
	case connected >= total-1:
		return "High"
	case connected >= 2:
		return "Medium"
	default:
		return "Learning"
	}
}

func clampScore(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
