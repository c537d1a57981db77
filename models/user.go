package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string

	// Onboarding profile
	DiagnosisYear int
	Medications   string
	Goals         string `gorm:"type:text"` // "; "-joined, insertion order
	KnownTriggers string `gorm:"type:text"` // "; "-joined, insertion order
	Onboarded     bool

	// Connected data sources (onboarding step 3)
	AppleHealth bool
	OuraRing    bool
	Fitbit      bool
	WeatherSync bool
}

// SourceCount is the number of available data-source integrations.
const SourceCount = 4

func (u *User) ConnectedSources() int {
	n := 0
	for _, on := range []bool{u.AppleHealth, u.OuraRing, u.Fitbit, u.WeatherSync} {
		if on {
			n++
		}
	}
	return n
}

func (u *User) GoalList() []string         { return splitJoined(u.Goals) }
func (u *User) KnownTriggerList() []string { return splitJoined(u.KnownTriggers) }
