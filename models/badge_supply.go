package models

import (
	"time"

	"avatar-progression/progression"
)

// BadgeSupply holds the global minted count of one badge tier. There is one
// row per tier so mints of different tiers lock different rows.
type BadgeSupply struct {
	Tier      progression.Tier `gorm:"primaryKey;type:varchar(16)" json:"tier"`
	Minted    int              `gorm:"not null;default:0" json:"minted"`
	Cap       int              `gorm:"not null" json:"cap"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BadgeSupply) TableName() string { return "badge_supply_counters" }

// DefaultBadgeSupply is the seed set: every tier at zero with its fixed cap.
func DefaultBadgeSupply() []BadgeSupply {
	rows := make([]BadgeSupply, 0, 5)
	for _, t := range progression.Tiers() {
		rows = append(rows, BadgeSupply{Tier: t, Cap: int(progression.SupplyCap(t))})
	}
	return rows
}
