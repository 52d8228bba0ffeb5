package models

import (
	"time"

	"avatar-progression/progression"

	"gorm.io/gorm"
)

type EventKind string

const (
	EventTraitMerged    EventKind = "trait_merged"
	EventBadgeMinted    EventKind = "badge_minted"
	EventBadgeRedeemed  EventKind = "badge_redeemed"
	EventAssetPurchased EventKind = "asset_purchased"
	EventRankMigrated   EventKind = "rank_migrated"
)

// ProgressEvent is the append-only history of every committed transition.
type ProgressEvent struct {
	ID         string           `gorm:"primaryKey;type:uuid" json:"id"`
	AvatarMint string           `gorm:"index" json:"avatar_mint,omitempty"` // empty for plain purchases
	Holder     string           `gorm:"index;not null" json:"holder"`
	Kind       EventKind        `gorm:"type:varchar(32);not null;index" json:"kind"`
	Tier       progression.Tier `gorm:"type:varchar(16)" json:"tier,omitempty"`
	TraitID    uint8            `json:"trait_id,omitempty"`
	AssetID    uint8            `json:"asset_id,omitempty"`
	Price      uint64           `json:"price,omitempty"`
	Generation string           `gorm:"type:varchar(4)" json:"generation,omitempty"` // v1 / v2
	CreatedAt  time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (e *ProgressEvent) BeforeCreate(tx *gorm.DB) error {
	newID(&e.ID)
	return nil
}
