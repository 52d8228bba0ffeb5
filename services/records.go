package services

import (
	"fmt"
	"time"

	"avatar-progression/models"
	"avatar-progression/progression"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Generation selects which ranking record the badge flows operate on.
type Generation string

const (
	GenerationV1 Generation = "v1"
	GenerationV2 Generation = "v2"
)

func ParseGeneration(s string) (Generation, error) {
	switch Generation(s) {
	case GenerationV1, GenerationV2:
		return Generation(s), nil
	case "":
		return GenerationV2, nil
	}
	return "", fmt.Errorf("unknown ranking generation %q", s)
}

// lockOrCreate returns the row of avatarMint locked for update, inserting
// seed first when no row exists yet. Concurrent first requests race on the
// unique avatar_mint index and all end up reading the same row.
func lockOrCreate[T any](tx *gorm.DB, avatarMint string, seed *T) (*T, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "avatar_mint"}},
		DoNothing: true,
	}).Create(seed).Error
	if err != nil {
		return nil, err
	}

	var row T
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("avatar_mint = ?", avatarMint).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// findByAvatar loads the row of avatarMint without creating one.
func findByAvatar[T any](db *gorm.DB, avatarMint string) (*T, bool, error) {
	var rows []T
	if err := db.Where("avatar_mint = ?", avatarMint).Limit(1).Find(&rows).Error; err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return &rows[0], true, nil
}

// lockRankingV2 returns the locked V2 ranking of avatarMint with its V1
// record, if any, folded in and persisted. changed reports whether the fold
// altered the V2 record.
func lockRankingV2(tx *gorm.DB, avatarMint string) (row *models.RankingV2, changed bool, err error) {
	row, err = lockOrCreate(tx, avatarMint, &models.RankingV2{AvatarMint: avatarMint})
	if err != nil {
		return nil, false, err
	}

	v1, found, err := findByAvatar[models.RankingV1](tx, avatarMint)
	if err != nil || !found {
		return row, false, err
	}

	before := row.Record()
	after := progression.MigrateFromV1(before, v1.Record())
	changed = after != before
	if changed || row.MigratedAt == nil {
		now := time.Now()
		row.Apply(after)
		row.MigratedAt = &now
		if err := tx.Save(row).Error; err != nil {
			return nil, false, err
		}
	}
	return row, changed, nil
}

// peekRankingV2 is the read-only counterpart of lockRankingV2: the fold is
// computed but nothing is written.
func peekRankingV2(db *gorm.DB, avatarMint string) (progression.RankRecordV2, error) {
	var rec progression.RankRecordV2
	v2, found, err := findByAvatar[models.RankingV2](db, avatarMint)
	if err != nil {
		return rec, err
	}
	if found {
		rec = v2.Record()
	}
	v1, found, err := findByAvatar[models.RankingV1](db, avatarMint)
	if err != nil {
		return rec, err
	}
	if found {
		rec = progression.MigrateFromV1(rec, v1.Record())
	}
	return rec, nil
}

func recordEvent(tx *gorm.DB, ev *models.ProgressEvent) error {
	if err := tx.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to record %s event: %w", ev.Kind, err)
	}
	return nil
}

func metadataURI(base, avatarMint string) string {
	return fmt.Sprintf("%s/avatars/%s.json", base, avatarMint)
}
