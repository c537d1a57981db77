package services

import (
	"math"
	"strings"

	"flareguard/models"
	"flareguard/utils"

	"gorm.io/gorm"
)

// trendWindow is the rolling window for weekly summaries and the baseline
// offset. The window never extends beyond available data.
const trendWindow = 7

// WeeklySummary holds rolling-window statistics over the last trendWindow
// logs. BestDay/ToughDay are the min/max risk logs; the first occurrence
// wins ties.
type WeeklySummary struct {
	AvgRisk      int              `json:"avg_risk"`
	AvgPain      float64          `json:"avg_pain"`
	AvgSleep     float64          `json:"avg_sleep"`
	MedAdherence int              `json:"med_adherence"`
	HighRiskDays int              `json:"high_risk_days"`
	BestDay      *models.DailyLog `json:"best_day"`
	ToughDay     *models.DailyLog `json:"tough_day"`
}

// TrendPoint feeds the risk trend chart.
type TrendPoint struct {
	Date string `json:"date"`
	Risk int    `json:"risk"`
}

// BuildWeeklySummary computes the rolling-window summary over logs sorted
// ascending by date. Returns nil when there are no logs.
func BuildWeeklySummary(logs []models.DailyLog) *WeeklySummary {
	window := lastN(logs, trendWindow)
	if len(window) == 0 {
		return nil
	}

	var riskSum, adherent, highRisk int
	var painSum, sleepSum float64
	best, tough := 0, 0
	for i, l := range window {
		riskSum += l.RiskScore
		painSum += float64(l.PainLevel)
		sleepSum += l.SleepHours
		if l.MedicationTaken {
			adherent++
		}
		if l.RiskScore >= highRiskThreshold {
			highRisk++
		}
		if l.RiskScore < window[best].RiskScore {
			best = i
		}
		if l.RiskScore > window[tough].RiskScore {
			tough = i
		}
	}

	n := len(window)
	return &WeeklySummary{
		AvgRisk:      int(math.Round(float64(riskSum) / float64(n))),
		AvgPain:      round1(painSum / float64(n)),
		AvgSleep:     round1(sleepSum / float64(n)),
		MedAdherence: int(math.Round(float64(adherent) / float64(n) * 100)),
		HighRiskDays: highRisk,
		BestDay:      &window[best],
		ToughDay:     &window[tough],
	}
}

// BaselineChange compares the latest score against the log 7 positions
// earlier. Undefined (nil) until more than 6 logs exist, never zero.
func BaselineChange(logs []models.DailyLog) *int {
	if len(logs) <= trendWindow-1 {
		return nil
	}
	latest := logs[len(logs)-1]
	baseline := logs[len(logs)-trendWindow]
	delta := latest.RiskScore - baseline.RiskScore
	return &delta
}

// RiskTrend maps the window to chart points in date order.
func RiskTrend(logs []models.DailyLog) []TrendPoint {
	window := lastN(logs, trendWindow)
	points := make([]TrendPoint, 0, len(window))
	for _, l := range window {
		points = append(points, TrendPoint{Date: l.Date.Format("Jan 2"), Risk: l.RiskScore})
	}
	return points
}

type TrendService struct {
	db *gorm.DB
}

func NewTrendService(db *gorm.DB) *TrendService { return &TrendService{db: db} }

type WeeklyReport struct {
	Summary        *WeeklySummary `json:"summary"`
	BaselineChange *int           `json:"baseline_change"`
	Trend          []TrendPoint   `json:"trend"`
}

func (s *TrendService) Weekly(userID uint) (*WeeklyReport, error) {
	logs, err := s.logsAsc(userID)
	if err != nil {
		return nil, err
	}
	return &WeeklyReport{
		Summary:        BuildWeeklySummary(logs),
		BaselineChange: BaselineChange(logs),
		Trend:          RiskTrend(logs),
	}, nil
}

// Outlook is the "today" panel: latest score with label, delta vs the
// previous day and the data-source confidence lookup.
type Outlook struct {
	RiskScore    *int     `json:"risk_score"`
	RiskLabel    string   `json:"risk_label"`
	RiskDelta    *int     `json:"risk_delta"`
	Triggers     []string `json:"triggers"`
	Guidance     []string `json:"guidance"`
	Confidence   string   `json:"confidence"`
	Sources      int      `json:"connected_sources"`
	FlaggedMeals []string `json:"flagged_meals"`
}

func (s *TrendService) TodayOutlook(user *models.User) (*Outlook, error) {
	var logs []models.DailyLog
	if err := s.db.
		Where("user_id = ?", user.ID).
		Order("date DESC").
		Limit(2).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	connected := user.ConnectedSources()
	out := &Outlook{
		RiskLabel:  "Unknown",
		Confidence: utils.ConfidenceLabel(connected, models.SourceCount),
		Sources:    connected,
	}
	if len(logs) > 0 {
		latest := logs[0]
		score := latest.RiskScore
		out.RiskScore = &score
		out.RiskLabel = utils.RiskLabel(score)
		out.Triggers = latest.TriggerList()
		out.Guidance = latest.GuidanceList()
		if len(logs) > 1 {
			delta := latest.RiskScore - logs[1].RiskScore
			out.RiskDelta = &delta
		}
	}

	flagged, err := s.flaggedRecentMeals(user.ID)
	if err != nil {
		return nil, err
	}
	out.FlaggedMeals = flagged

	return out, nil
}

// flaggedRecentMeals returns descriptions of recent meals carrying a tag the
// correlator has flagged.
func (s *TrendService) flaggedRecentMeals(userID uint) ([]string, error) {
	var meals []models.MealLog
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}

	logs, err := s.logsAsc(userID)
	if err != nil {
		return nil, err
	}

	flaggedSet := map[string]bool{}
	for _, tag := range FlaggedTags(CorrelateTags(meals, logs)) {
		flaggedSet[tag] = true
	}
	if len(flaggedSet) == 0 {
		return nil, nil
	}

	recent := meals
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}
	var out []string
	for _, meal := range recent {
		for _, tag := range meal.TagList() {
			if flaggedSet[strings.ToLower(strings.TrimSpace(tag))] {
				out = append(out, meal.Description)
				break
			}
		}
	}
	return out, nil
}

func (s *TrendService) logsAsc(userID uint) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&logs).Error
	return logs, err
}

func lastN(logs []models.DailyLog, n int) []models.DailyLog {
	if len(logs) > n {
		return logs[len(logs)-n:]
	}
	return logs
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
