package services

import (
	"fmt"
	"strconv"
	"strings"

	"flareguard/models"

	"gorm.io/gorm"
)

// ComposeHighlights formats clinician-ready sentences in fixed order from
// already-computed aggregates. Pure formatting, no new computation.
// Optional lines (baseline, top tag, trigger focus) are skipped when their
// inputs are absent.
func ComposeHighlights(summary *WeeklySummary, baselineChange *int, signals []TagCorrelation, latest *models.DailyLog) []string {
	if summary == nil || latest == nil {
		return nil
	}

	highlights := []string{
		fmt.Sprintf("Average flare risk %d%% with %d high-risk day(s).", summary.AvgRisk, summary.HighRiskDays),
		fmt.Sprintf("Medication adherence %d%% and average sleep %s hrs.", summary.MedAdherence, formatDecimal(summary.AvgSleep)),
	}

	if baselineChange != nil {
		direction := "increase"
		if *baselineChange <= 0 {
			direction = "decline"
		}
		magnitude := *baselineChange
		if magnitude < 0 {
			magnitude = -magnitude
		}
		highlights = append(highlights,
			fmt.Sprintf("%d point %s vs 7-day baseline.", magnitude, direction))
	}

	if len(signals) > 0 {
		top := signals[0]
		highlights = append(highlights,
			fmt.Sprintf("Top suspected trigger: %s (linked on %d%% of tracked meals).", top.Tag, top.HighRiskShare))
	}

	if triggers := latest.TriggerList(); len(triggers) > 0 {
		highlights = append(highlights,
			fmt.Sprintf("Today's alert focus: %s.", strings.Join(triggers, ", ")))
	}

	return highlights
}

// formatDecimal prints a 1-decimal average without a trailing ".0".
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type HighlightService struct {
	db *gorm.DB
}

func NewHighlightService(db *gorm.DB) *HighlightService { return &HighlightService{db: db} }

func (s *HighlightService) Highlights(userID uint) ([]string, error) {
	var logs []models.DailyLog
	if err := s.db.
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}

	var meals []models.MealLog
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	summary := BuildWeeklySummary(logs)
	baseline := BaselineChange(logs)
	signals := CorrelateTags(meals, logs)
	latest := logs[len(logs)-1]

	return ComposeHighlights(summary, baseline, signals, &latest), nil
}
