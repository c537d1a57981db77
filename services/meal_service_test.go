package services

import (
	"testing"

	"flareguard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", "fried,sugar,dairy", []string{"fried", "sugar", "dairy"}},
		{"trims entries", " fried , sugar ", []string{"fried", "sugar"}},
		{"drops blanks", "fried,,sugar,", []string{"fried", "sugar"}},
		{"keeps submission order", "c,a,b", []string{"c", "a", "b"}},
		{"keeps casing", "Fried Food", []string{"Fried Food"}},
		{"empty falls back", "", []string{"unclassified"}},
		{"whitespace falls back", " , , ", []string{"unclassified"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestSubmitMeal(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	meal, err := svc.SubmitMeal(1, MealRequest{
		Date:        "2026-08-20",
		Description: "  Grilled salmon bowl  ",
		Tags:        "salmon, greens",
		Reaction:    "Energized",
		Notes:       "felt good after",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, meal.ID)
	assert.Equal(t, "Grilled salmon bowl", meal.Description)
	assert.Equal(t, []string{"salmon", "greens"}, meal.TagList())
	assert.Equal(t, models.ReactionEnergized, meal.Reaction)
	assert.Equal(t, "2026-08-20", meal.Date.Format("2006-01-02"))
}

func TestSubmitMeal_RejectsBlankDescription(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	for _, desc := range []string{"", "   ", "\t\n"} {
		_, err := svc.SubmitMeal(1, MealRequest{Description: desc})
		assert.ErrorIs(t, err, ErrEmptyDescription)
	}

	var count int64
	require.NoError(t, db.Model(&models.MealLog{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitMeal_DefaultsAndValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	meal, err := svc.SubmitMeal(1, MealRequest{Description: "toast"})
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSteady, meal.Reaction)
	assert.Equal(t, []string{"unclassified"}, meal.TagList())

	_, err = svc.SubmitMeal(1, MealRequest{Description: "toast", Reaction: "queasy"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "reaction", vErr.Field)
}

func TestSubmitMeal_SameDayMealsAccumulate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	first, err := svc.SubmitMeal(1, MealRequest{Date: "2026-08-20", Description: "breakfast"})
	require.NoError(t, err)
	second, err := svc.SubmitMeal(1, MealRequest{Date: "2026-08-20", Description: "lunch"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.MealLog{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListRecentMeals_DefaultLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	for i := 0; i < 6; i++ {
		_, err := svc.SubmitMeal(1, MealRequest{Date: "2026-08-20", Description: "meal"})
		require.NoError(t, err)
	}

	meals, err := svc.ListRecentMeals(1, 0)
	require.NoError(t, err)
	assert.Len(t, meals, 4)
}
