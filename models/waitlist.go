package models

import "time"

// WaitlistEntry belongs to the marketing side of the product. It shares no
// data with the patient health engine; the founder dashboard aggregates it
// separately (signup sources, conversion into paid tiers).
type WaitlistEntry struct {
	ID          uint   `gorm:"primaryKey"`
	Email       string `gorm:"not null;index"`
	Note        string `gorm:"type:text"`
	Source      string `gorm:"size:64"` // e.g. webinar, instagram, referral
	Plan        string `gorm:"size:32"` // waitlist | pro | premium
	UTMSource   string `gorm:"size:64"`
	UTMCampaign string `gorm:"size:64"`
	Converted   bool
	CreatedAt   time.Time
}
