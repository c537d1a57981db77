package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"flareguard/models"
	"flareguard/utils"

	"gorm.io/gorm"
)

// ValidationError rejects a whole check-in submission; nothing is stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CheckInRequest carries raw form values. Numeric fields arrive as strings
// and must parse cleanly; a bad value fails the whole submission instead of
// leaking a non-number into the risk arithmetic.
type CheckInRequest struct {
	Date            string `json:"date" form:"date"` // YYYY-MM-DD, empty = today
	SleepHours      string `json:"sleep_hours" form:"sleep_hours"`
	Steps           string `json:"steps" form:"steps"`
	HRV             string `json:"hrv" form:"hrv"`
	PainLevel       string `json:"pain_level" form:"pain_level"`
	StressLevel     string `json:"stress_level" form:"stress_level"`
	MedicationTaken string `json:"medication_taken" form:"medication_taken"`
	Notes           string `json:"notes" form:"notes"`
}

// NormalizeCheckIn validates and coerces a raw submission into metrics the
// engine can score. Fails closed: any unparseable or out-of-range field
// rejects the submission.
func NormalizeCheckIn(req CheckInRequest) (utils.CheckInMetrics, error) {
	var m utils.CheckInMetrics

	sleep, err := parseFloatField("sleep_hours", req.SleepHours)
	if err != nil {
		return m, err
	}
	if sleep < 0 {
		return m, &ValidationError{Field: "sleep_hours", Reason: "must be >= 0"}
	}

	steps, err := parseIntField("steps", req.Steps)
	if err != nil {
		return m, err
	}
	if steps < 0 {
		return m, &ValidationError{Field: "steps", Reason: "must be >= 0"}
	}

	hrv, err := parseFloatField("hrv", req.HRV)
	if err != nil {
		return m, err
	}
	if hrv < 0 {
		return m, &ValidationError{Field: "hrv", Reason: "must be >= 0"}
	}

	pain, err := parseIntField("pain_level", req.PainLevel)
	if err != nil {
		return m, err
	}
	if pain < 0 || pain > 10 {
		return m, &ValidationError{Field: "pain_level", Reason: "must be between 0 and 10"}
	}

	stress, err := parseIntField("stress_level", req.StressLevel)
	if err != nil {
		return m, err
	}
	if stress < 0 || stress > 10 {
		return m, &ValidationError{Field: "stress_level", Reason: "must be between 0 and 10"}
	}

	taken := false
	if v := strings.TrimSpace(req.MedicationTaken); v != "" {
		taken, err = strconv.ParseBool(v)
		if err != nil {
			return m, &ValidationError{Field: "medication_taken", Reason: "must be true or false"}
		}
	}

	m = utils.CheckInMetrics{
		SleepHours:      sleep,
		Steps:           steps,
		HRV:             hrv,
		PainLevel:       pain,
		StressLevel:     stress,
		MedicationTaken: taken,
		Notes:           strings.TrimSpace(req.Notes),
	}
	return m, nil
}

func parseFloatField(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a number"}
	}
	return v, nil
}

func parseIntField(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a whole number"}
	}
	return v, nil
}

// highRiskThreshold marks a day as high risk for alerts, trend counts and
// meal correlation.
const highRiskThreshold = 60

type CheckInService struct {
	db *gorm.DB
}

func NewCheckInService(db *gorm.DB) *CheckInService { return &CheckInService{db: db} }

// SubmitCheckIn normalizes the submission, derives score/triggers/guidance
// and upserts the log for that date. Resubmitting a date replaces the prior
// record wholesale (last-write-wins, not a merge).
func (s *CheckInService) SubmitCheckIn(userID uint, req CheckInRequest) (*models.DailyLog, error) {
	metrics, err := NormalizeCheckIn(req)
	if err != nil {
		return nil, err
	}

	date, err := resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	score := utils.RiskScore(metrics)
	triggers := utils.DetectTriggers(metrics)
	guidance := utils.DeriveGuidance(metrics)

	log := models.DailyLog{UserID: userID, Date: date}
	// Assign with a map so zero values (steps=0, medication=false) still
	// overwrite a previous submission for the same date.
	attrs := map[string]interface{}{
		"sleep_hours":      metrics.SleepHours,
		"steps":            metrics.Steps,
		"hrv":              metrics.HRV,
		"pain_level":       metrics.PainLevel,
		"stress_level":     metrics.StressLevel,
		"medication_taken": metrics.MedicationTaken,
		"notes":            metrics.Notes,
		"risk_score":       score,
		"triggers":         models.JoinList(triggers),
		"guidance":         models.JoinList(guidance),
	}
	if err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		Assign(attrs).
		FirstOrCreate(&log).Error; err != nil {
		return nil, err
	}

	if score >= highRiskThreshold {
		EmitAlert(userID, "warning",
			fmt.Sprintf("Flare risk %d%% on %s — review today's action plan.", score, date.Format("Jan 2")))
	}

	return &log, nil
}

// ListLogs returns every log ascending by date.
func (s *CheckInService) ListLogs(userID uint) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&logs).Error
	return logs, err
}

// LatestLogs returns the most recent log and the one before it. Either may
// be nil when not enough logs exist.
func (s *CheckInService) LatestLogs(userID uint) (latest, previous *models.DailyLog, err error) {
	var logs []models.DailyLog
	if err = s.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(2).
		Find(&logs).Error; err != nil {
		return nil, nil, err
	}
	if len(logs) > 0 {
		latest = &logs[0]
	}
	if len(logs) > 1 {
		previous = &logs[1]
	}
	return latest, previous, nil
}

func resolveDate(raw string) (time.Time, error) {
	now := time.Now()
	if strings.TrimSpace(raw) == "" {
		return dayStart(now), nil
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), now.Location())
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return dayStart(d), nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
