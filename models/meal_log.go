package models

import (
	"strings"
	"time"
)

// Meal reactions as reported by the patient.
const (
	ReactionSteady    = "steady"
	ReactionSuspect   = "suspect"
	ReactionEnergized = "energized"
)

// MealLog is an immutable meal entry. Tags keep submission order; when the
// patient supplies none the service stores the single sentinel "unclassified".
type MealLog struct {
	ID          string    `gorm:"primaryKey;size:36"` // uuid
	UserID      uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"index;not null"` // truncated to local midnight
	Description string    `gorm:"not null"`
	Tags        string    `gorm:"type:text"` // comma-joined, submission order
	Reaction    string    `gorm:"size:16"`   // steady | suspect | energized
	Notes       string    `gorm:"type:text"`
	PhotoURL    string
	CreatedAt   time.Time
}

func (m *MealLog) TagList() []string {
	if strings.TrimSpace(m.Tags) == "" {
		return nil
	}
	parts := strings.Split(m.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
