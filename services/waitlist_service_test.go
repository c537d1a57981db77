package services

import (
	"testing"
	"time"

	"flareguard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupAt(t *testing.T, date, source string, converted bool) models.WaitlistEntry {
	t.Helper()
	return models.WaitlistEntry{
		Email:     "p@example.com",
		Source:    source,
		Converted: converted,
		CreatedAt: mustDate(t, date).Add(9 * time.Hour),
	}
}

func TestAggregateDailySignups(t *testing.T) {
	entries := []models.WaitlistEntry{
		signupAt(t, "2026-08-20", "twitter", false),
		signupAt(t, "2026-08-18", "reddit", false),
		signupAt(t, "2026-08-20", "twitter", true),
	}

	got := AggregateDailySignups(entries)
	assert.Equal(t, []DailySignupCount{
		{Date: "2026-08-18", Count: 1},
		{Date: "2026-08-20", Count: 2},
	}, got)
}

func TestAggregateSources(t *testing.T) {
	entries := []models.WaitlistEntry{
		signupAt(t, "2026-08-18", "twitter", false),
		signupAt(t, "2026-08-18", "Twitter", false),
		signupAt(t, "2026-08-19", "", false),
		signupAt(t, "2026-08-19", "reddit", false),
		signupAt(t, "2026-08-19", " twitter ", false),
	}

	got := AggregateSources(entries)
	require.Len(t, got, 3)
	assert.Equal(t, SourceBreakdown{Name: "Twitter", Value: 3}, got[0])
	// unknown and reddit both count 1; first-seen order preserved
	assert.Equal(t, SourceBreakdown{Name: "Unknown", Value: 1}, got[1])
	assert.Equal(t, SourceBreakdown{Name: "Reddit", Value: 1}, got[2])
}

func TestAggregateConversion(t *testing.T) {
	entries := []models.WaitlistEntry{
		signupAt(t, "2026-08-18", "twitter", true),
		signupAt(t, "2026-08-18", "twitter", false),
		signupAt(t, "2026-08-19", "reddit", false),
	}

	got := AggregateConversion(entries)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Converted)
	assert.Equal(t, 2, got.Free)
	assert.Equal(t, 33.3, got.ConversionRate)
}

func TestAggregateConversion_EmptyListHasZeroRate(t *testing.T) {
	got := AggregateConversion(nil)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 0.0, got.ConversionRate)
}

func TestWaitlistService_AddSignupAndAnalytics(t *testing.T) {
	db := newTestDB(t)
	svc := NewWaitlistService(db)

	entry, err := svc.AddSignup(SignupRequest{
		Email:  " founder@example.com ",
		Source: "producthunt",
	})
	require.NoError(t, err)
	assert.Equal(t, "founder@example.com", entry.Email)
	assert.Equal(t, "waitlist", entry.Plan) // default plan

	_, err = svc.AddSignup(SignupRequest{Email: "second@example.com", Plan: "founding"})
	require.NoError(t, err)

	analytics, err := svc.Analytics()
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.Conversion.Total)
	require.Len(t, analytics.Sources, 2)
	assert.Equal(t, "Producthunt", analytics.Sources[0].Name)
}
