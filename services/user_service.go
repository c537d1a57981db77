package services

import (
	"errors"
	"strings"

	"flareguard/config"
	"flareguard/models"
	"flareguard/utils"
)

type ProfileInput struct {
	FullName      string   `json:"full_name"`
	DiagnosisYear int      `json:"diagnosis_year"`
	Medications   string   `json:"medications"`
	Goals         []string `json:"goals"`
	KnownTriggers []string `json:"known_triggers"`
	Onboarded     bool     `json:"onboarded"`
}

type SourcesInput struct {
	AppleHealth *bool `json:"apple_health"`
	OuraRing    *bool `json:"oura_ring"`
	Fitbit      *bool `json:"fitbit"`
	WeatherSync *bool `json:"weather_sync"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	yearsWith := 0
	if user.DiagnosisYear > 0 {
		if y, err := utils.YearsSinceDiagnosis(user.DiagnosisYear); err == nil {
			yearsWith = y
		}
	}

	connected := user.ConnectedSources()
	return map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"full_name":         user.FullName,
		"diagnosis_year":    user.DiagnosisYear,
		"years_with_ra":     yearsWith,
		"medications":       user.Medications,
		"goals":             user.GoalList(),
		"known_triggers":    user.KnownTriggerList(),
		"onboarded":         user.Onboarded,
		"connected_sources": connected,
		"confidence":        utils.ConfidenceLabel(connected, models.SourceCount),
		"sources": map[string]bool{
			"apple_health": user.AppleHealth,
			"oura_ring":    user.OuraRing,
			"fitbit":       user.Fitbit,
			"weather_sync": user.WeatherSync,
		},
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if name := strings.TrimSpace(input.FullName); name != "" {
		user.FullName = name
	}
	if input.DiagnosisYear > 0 {
		if _, err := utils.YearsSinceDiagnosis(input.DiagnosisYear); err != nil {
			return err
		}
		user.DiagnosisYear = input.DiagnosisYear
	}
	if meds := strings.TrimSpace(input.Medications); meds != "" {
		user.Medications = meds
	}
	if input.Goals != nil {
		user.Goals = models.JoinList(dedupeTrimmed(input.Goals))
	}
	if input.KnownTriggers != nil {
		user.KnownTriggers = models.JoinList(dedupeTrimmed(input.KnownTriggers))
	}
	user.Onboarded = user.Onboarded || input.Onboarded

	return config.DB.Save(&user).Error
}

// UpdateSources toggles connected data-source integrations; nil fields are
// left untouched.
func UpdateSources(userID uint, input SourcesInput) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if input.AppleHealth != nil {
		user.AppleHealth = *input.AppleHealth
	}
	if input.OuraRing != nil {
		user.OuraRing = *input.OuraRing
	}
	if input.Fitbit != nil {
		user.Fitbit = *input.Fitbit
	}
	if input.WeatherSync != nil {
		user.WeatherSync = *input.WeatherSync
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// dedupeTrimmed keeps first occurrence order, drops blanks and repeats.
func dedupeTrimmed(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
