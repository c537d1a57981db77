package services

import (
	"testing"
	"time"

	"flareguard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealOn(t *testing.T, date, tags, reaction string) models.MealLog {
	t.Helper()
	return models.MealLog{
		UserID:      1,
		Date:        mustDate(t, date),
		Description: "meal",
		Tags:        tags,
		Reaction:    reaction,
		CreatedAt:   time.Now(),
	}
}

func TestCorrelateTags_HighRiskShare(t *testing.T) {
	logs := []models.DailyLog{
		{UserID: 1, Date: mustDate(t, "2026-08-19"), RiskScore: 78},
		{UserID: 1, Date: mustDate(t, "2026-08-20"), RiskScore: 30},
	}
	meals := []models.MealLog{
		mealOn(t, "2026-08-19", "fried", models.ReactionSteady),
		mealOn(t, "2026-08-20", "fried", models.ReactionSteady),
	}

	signals := CorrelateTags(meals, logs)
	require.Len(t, signals, 1)
	assert.Equal(t, "fried", signals[0].NormalizedTag)
	assert.Equal(t, 2, signals[0].Count)
	assert.Equal(t, 50, signals[0].HighRiskShare)

	assert.Equal(t, []string{"fried"}, FlaggedTags(signals))
}

func TestCorrelateTags_SuspectReactionCountsAsHit(t *testing.T) {
	logs := []models.DailyLog{
		{UserID: 1, Date: mustDate(t, "2026-08-20"), RiskScore: 30},
	}
	meals := []models.MealLog{
		mealOn(t, "2026-08-20", "dairy", models.ReactionSuspect),
	}

	signals := CorrelateTags(meals, logs)
	require.Len(t, signals, 1)
	assert.Equal(t, 100, signals[0].HighRiskShare)
}

func TestCorrelateTags_MealWithoutMatchingLog(t *testing.T) {
	meals := []models.MealLog{
		mealOn(t, "2026-08-20", "salmon", models.ReactionSteady),
	}

	signals := CorrelateTags(meals, nil)
	require.Len(t, signals, 1)
	assert.Equal(t, 1, signals[0].Count)
	assert.Equal(t, 0, signals[0].HighRiskShare)
}

func TestCorrelateTags_NormalizationGroupsCaseAndSpace(t *testing.T) {
	meals := []models.MealLog{
		mealOn(t, "2026-08-19", "Fried Food", models.ReactionSteady),
		mealOn(t, "2026-08-20", " fried food ", models.ReactionSteady),
		mealOn(t, "2026-08-21", "FRIED FOOD", models.ReactionSteady),
	}

	signals := CorrelateTags(meals, nil)
	require.Len(t, signals, 1)
	assert.Equal(t, "fried food", signals[0].NormalizedTag)
	assert.Equal(t, "Fried Food", signals[0].Tag) // first-seen casing
	assert.Equal(t, 3, signals[0].Count)
}

func TestCorrelateTags_Ranking(t *testing.T) {
	logs := []models.DailyLog{
		{UserID: 1, Date: mustDate(t, "2026-08-19"), RiskScore: 78},
		{UserID: 1, Date: mustDate(t, "2026-08-20"), RiskScore: 30},
	}
	meals := []models.MealLog{
		// "sugar": 1 of 1 high risk → 100
		mealOn(t, "2026-08-19", "sugar", models.ReactionSteady),
		// "wine": 1 of 2 high risk → 50, count 2
		mealOn(t, "2026-08-19", "wine", models.ReactionSteady),
		mealOn(t, "2026-08-20", "wine", models.ReactionSteady),
		// "bread": 0 of 1 → 0
		mealOn(t, "2026-08-20", "bread", models.ReactionSteady),
		// "oats": 1 of 2 high risk → 50, count 2, seen after wine
		mealOn(t, "2026-08-19", "oats", models.ReactionSteady),
		mealOn(t, "2026-08-20", "oats", models.ReactionSteady),
	}

	signals := CorrelateTags(meals, logs)
	require.Len(t, signals, 4)
	assert.Equal(t, "sugar", signals[0].NormalizedTag)
	// equal share and count: first-seen order breaks the tie
	assert.Equal(t, "wine", signals[1].NormalizedTag)
	assert.Equal(t, "oats", signals[2].NormalizedTag)
	assert.Equal(t, "bread", signals[3].NormalizedTag)
}

func TestCorrelateTags_EqualShareHigherCountFirst(t *testing.T) {
	logs := []models.DailyLog{
		{UserID: 1, Date: mustDate(t, "2026-08-19"), RiskScore: 78},
		{UserID: 1, Date: mustDate(t, "2026-08-20"), RiskScore: 78},
	}
	meals := []models.MealLog{
		mealOn(t, "2026-08-19", "rice", models.ReactionSteady),
		mealOn(t, "2026-08-19", "beans", models.ReactionSteady),
		mealOn(t, "2026-08-20", "beans", models.ReactionSteady),
	}

	signals := CorrelateTags(meals, logs)
	require.Len(t, signals, 2)
	// both 100% but beans appears on two meals
	assert.Equal(t, "beans", signals[0].NormalizedTag)
	assert.Equal(t, "rice", signals[1].NormalizedTag)
}

func TestFocusTrigger(t *testing.T) {
	signals := []TagCorrelation{
		{NormalizedTag: "sugar", HighRiskShare: 45, Count: 2},
		{NormalizedTag: "wine", HighRiskShare: 30, Count: 5},
	}
	focus := FocusTrigger(signals)
	require.NotNil(t, focus)
	assert.Equal(t, "sugar", focus.NormalizedTag)

	assert.Nil(t, FocusTrigger([]TagCorrelation{{NormalizedTag: "wine", HighRiskShare: 30}}))
	assert.Nil(t, FocusTrigger(nil))
}

func TestCorrelationService_Correlations(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.DailyLog{
		UserID: 1, Date: mustDate(t, "2026-08-19"), RiskScore: 78,
	}).Error)
	meal := mealOn(t, "2026-08-19", "fried", models.ReactionSteady)
	meal.ID = "a2b9f3c1-0000-4000-8000-000000000001"
	require.NoError(t, db.Create(&meal).Error)

	report, err := NewCorrelationService(db).Correlations(1)
	require.NoError(t, err)
	require.Len(t, report.Signals, 1)
	assert.Equal(t, 100, report.Signals[0].HighRiskShare)
	assert.Equal(t, []string{"fried"}, report.FlaggedTags)
	require.NotNil(t, report.FocusTrigger)
	assert.Equal(t, "fried", report.FocusTrigger.NormalizedTag)
}
