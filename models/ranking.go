package models

import (
	"time"

	"avatar-progression/progression"

	"gorm.io/gorm"
)

// RankingV1 is the first-generation ranking row. Rows are only read by the
// V2 migration once the service runs in v2 mode.
type RankingV1 struct {
	ID         string           `gorm:"primaryKey;type:uuid" json:"id"`
	AvatarMint string           `gorm:"uniqueIndex;not null" json:"avatar_mint"`
	Rank       progression.Tier `gorm:"type:varchar(16);not null;default:''" json:"rank"`
	Pending    bool             `gorm:"not null;default:false" json:"pending"`

	Timestamps
}

func (RankingV1) TableName() string { return "rankings" }

func (r *RankingV1) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

func (r *RankingV1) Record() progression.RankRecordV1 {
	return progression.RankRecordV1{Rank: r.Rank, Pending: r.Pending}
}

func (r *RankingV1) Apply(rec progression.RankRecordV1) {
	r.Rank = rec.Rank
	r.Pending = rec.Pending
}

// RankingV2 is the current ranking row: one minted flag per tier.
type RankingV2 struct {
	ID         string           `gorm:"primaryKey;type:uuid" json:"id"`
	AvatarMint string           `gorm:"uniqueIndex;not null" json:"avatar_mint"`
	Rank       progression.Tier `gorm:"type:varchar(16);not null;default:''" json:"rank"`

	MintedBronze   bool `gorm:"not null;default:false" json:"minted_bronze"`
	MintedSilver   bool `gorm:"not null;default:false" json:"minted_silver"`
	MintedGold     bool `gorm:"not null;default:false" json:"minted_gold"`
	MintedPlatinum bool `gorm:"not null;default:false" json:"minted_platinum"`
	MintedDiamond  bool `gorm:"not null;default:false" json:"minted_diamond"`

	MigratedAt   *time.Time `json:"migrated_at,omitempty"`
	LastRankUpAt *time.Time `json:"last_rank_up_at,omitempty"`

	Timestamps
}

func (RankingV2) TableName() string { return "rankings_v2" }

func (r *RankingV2) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

func (r *RankingV2) Record() progression.RankRecordV2 {
	return progression.RankRecordV2{
		Rank: r.Rank,
		Minted: progression.MintedFlags{
			Bronze:   r.MintedBronze,
			Silver:   r.MintedSilver,
			Gold:     r.MintedGold,
			Platinum: r.MintedPlatinum,
			Diamond:  r.MintedDiamond,
		},
	}
}

func (r *RankingV2) Apply(rec progression.RankRecordV2) {
	r.Rank = rec.Rank
	r.MintedBronze = rec.Minted.Bronze
	r.MintedSilver = rec.Minted.Silver
	r.MintedGold = rec.Minted.Gold
	r.MintedPlatinum = rec.Minted.Platinum
	r.MintedDiamond = rec.Minted.Diamond
}
