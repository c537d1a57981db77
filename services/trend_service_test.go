package services

import (
	"testing"

	"flareguard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logsWithScores(t *testing.T, start string, scores []int) []models.DailyLog {
	t.Helper()
	day := mustDate(t, start)
	logs := make([]models.DailyLog, 0, len(scores))
	for i, s := range scores {
		logs = append(logs, models.DailyLog{
			UserID:    1,
			Date:      day.AddDate(0, 0, i),
			RiskScore: s,
		})
	}
	return logs
}

func TestBuildWeeklySummary_SevenDayWeek(t *testing.T) {
	logs := logsWithScores(t, "2026-08-14", []int{22, 34, 28, 52, 38, 78, 44})
	for i := range logs {
		logs[i].PainLevel = 4
		logs[i].SleepHours = 6.8
		logs[i].MedicationTaken = i%2 == 0 // 4 of 7
	}

	summary := BuildWeeklySummary(logs)
	require.NotNil(t, summary)

	assert.Equal(t, 42, summary.AvgRisk) // round(296/7)
	assert.Equal(t, 1, summary.HighRiskDays)
	assert.Equal(t, 22, summary.BestDay.RiskScore)
	assert.Equal(t, 78, summary.ToughDay.RiskScore)
	assert.Equal(t, 4.0, summary.AvgPain)
	assert.Equal(t, 6.8, summary.AvgSleep)
	assert.Equal(t, 57, summary.MedAdherence) // round(4/7*100)
}

func TestBuildWeeklySummary_WindowIsLastSeven(t *testing.T) {
	// ten logs; the first three must not influence the summary
	logs := logsWithScores(t, "2026-08-11", []int{95, 95, 95, 22, 34, 28, 52, 38, 78, 44})

	summary := BuildWeeklySummary(logs)
	require.NotNil(t, summary)
	assert.Equal(t, 42, summary.AvgRisk)
	assert.Equal(t, 1, summary.HighRiskDays)
	assert.Equal(t, 22, summary.BestDay.RiskScore)
}

func TestBuildWeeklySummary_ShorterThanWindow(t *testing.T) {
	logs := logsWithScores(t, "2026-08-19", []int{40, 60})

	summary := BuildWeeklySummary(logs)
	require.NotNil(t, summary)
	assert.Equal(t, 50, summary.AvgRisk)
	assert.Equal(t, 1, summary.HighRiskDays) // 60 counts, threshold is inclusive
}

func TestBuildWeeklySummary_TiesGoToFirstOccurrence(t *testing.T) {
	logs := logsWithScores(t, "2026-08-18", []int{50, 20, 20, 80, 80})

	summary := BuildWeeklySummary(logs)
	require.NotNil(t, summary)
	assert.Equal(t, "2026-08-19", summary.BestDay.Date.Format("2006-01-02"))
	assert.Equal(t, "2026-08-21", summary.ToughDay.Date.Format("2006-01-02"))
}

func TestBuildWeeklySummary_Empty(t *testing.T) {
	assert.Nil(t, BuildWeeklySummary(nil))
}

func TestBaselineChange_UndefinedUntilSevenLogs(t *testing.T) {
	for n := 0; n <= 6; n++ {
		logs := logsWithScores(t, "2026-08-14", make([]int, n))
		assert.Nil(t, BaselineChange(logs), "n=%d", n)
	}
}

func TestBaselineChange_LatestVsSevenBack(t *testing.T) {
	logs := logsWithScores(t, "2026-08-14", []int{30, 22, 34, 28, 52, 38, 78, 44})

	// baseline is logs[len-7] = 22, latest is 44
	delta := BaselineChange(logs)
	require.NotNil(t, delta)
	assert.Equal(t, 22, *delta)
}

func TestBaselineChange_ExactlySeven(t *testing.T) {
	logs := logsWithScores(t, "2026-08-14", []int{22, 34, 28, 52, 38, 78, 44})

	delta := BaselineChange(logs)
	require.NotNil(t, delta)
	assert.Equal(t, 22, *delta) // 44 - 22
}

func TestRiskTrend_MapsWindowInDateOrder(t *testing.T) {
	logs := logsWithScores(t, "2026-08-14", []int{22, 34, 28})

	points := RiskTrend(logs)
	require.Len(t, points, 3)
	assert.Equal(t, TrendPoint{Date: "Aug 14", Risk: 22}, points[0])
	assert.Equal(t, TrendPoint{Date: "Aug 16", Risk: 28}, points[2])
}

func TestTrendService_Weekly(t *testing.T) {
	db := newTestDB(t)
	scores := []int{22, 34, 28, 52, 38, 78, 44}
	day := mustDate(t, "2026-08-14")
	for i, s := range scores {
		require.NoError(t, db.Create(&models.DailyLog{
			UserID: 1, Date: day.AddDate(0, 0, i), RiskScore: s,
		}).Error)
	}

	report, err := NewTrendService(db).Weekly(1)
	require.NoError(t, err)
	require.NotNil(t, report.Summary)
	assert.Equal(t, 42, report.Summary.AvgRisk)
	require.NotNil(t, report.BaselineChange)
	assert.Equal(t, 22, *report.BaselineChange)
	assert.Len(t, report.Trend, 7)
}

func TestTodayOutlook(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Email: "pat@example.com", AppleHealth: true, OuraRing: true, Fitbit: true}
	require.NoError(t, db.Create(&user).Error)

	svc := NewTrendService(db)

	out, err := svc.TodayOutlook(&user)
	require.NoError(t, err)
	assert.Nil(t, out.RiskScore)
	assert.Equal(t, "Unknown", out.RiskLabel)
	assert.Equal(t, "High", out.Confidence) // 3 of 4 sources connected
	assert.Equal(t, 3, out.Sources)

	require.NoError(t, db.Create(&models.DailyLog{
		UserID: user.ID, Date: mustDate(t, "2026-08-19"), RiskScore: 40,
	}).Error)
	require.NoError(t, db.Create(&models.DailyLog{
		UserID: user.ID, Date: mustDate(t, "2026-08-20"), RiskScore: 72,
		Triggers: "Sleep debt; Stress spikes",
	}).Error)

	out, err = svc.TodayOutlook(&user)
	require.NoError(t, err)
	require.NotNil(t, out.RiskScore)
	assert.Equal(t, 72, *out.RiskScore)
	assert.Equal(t, "High", out.RiskLabel)
	require.NotNil(t, out.RiskDelta)
	assert.Equal(t, 32, *out.RiskDelta)
	assert.Equal(t, []string{"Sleep debt", "Stress spikes"}, out.Triggers)
	assert.Empty(t, out.FlaggedMeals)

	// a meal tagged on the high-risk day gets flagged and surfaces by name
	meal := mealOn(t, "2026-08-20", "fried", models.ReactionSteady)
	meal.ID = "a2b9f3c1-0000-4000-8000-000000000002"
	meal.UserID = user.ID
	meal.Description = "fried chicken basket"
	require.NoError(t, db.Create(&meal).Error)

	out, err = svc.TodayOutlook(&user)
	require.NoError(t, err)
	assert.Equal(t, []string{"fried chicken basket"}, out.FlaggedMeals)
}
