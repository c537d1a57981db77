package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DailyLog is one check-in per user per calendar day. A resubmission for the
// same date replaces the stored record (last-write-wins, enforced in the
// check-in service), so at most one row exists per (user_id, date).
type DailyLog struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"` // truncated to local midnight

	SleepHours      float64
	Steps           int
	HRV             float64
	PainLevel       int // 0-10
	StressLevel     int // 0-10
	MedicationTaken bool
	Notes           string `gorm:"type:text"`

	// Derived on submission, never recomputed in place
	RiskScore int    // 5..95
	Triggers  string `gorm:"type:text"` // "; "-joined, detection order
	Guidance  string `gorm:"type:text"` // "; "-joined, at most 4 entries
}

func (l *DailyLog) TriggerList() []string  { return splitJoined(l.Triggers) }
func (l *DailyLog) GuidanceList() []string { return splitJoined(l.Guidance) }

// JoinList is the inverse of splitJoined, used when persisting derived lists.
func JoinList(items []string) string { return strings.Join(items, "; ") }

func splitJoined(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "; ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
