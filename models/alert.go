package models

import "time"

// Alert is a persisted notification; high-risk check-ins create one and fan
// it out over the realtime hub and push endpoints.
type Alert struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	Type      string    `gorm:"size:20"` // "warning" | "info"
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time
}
