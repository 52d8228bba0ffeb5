package store

import (
	"fmt"

	"avatar-progression/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Open connects to postgres.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the progression tables and seeds one supply row per tier.
// Seeding never touches an existing counter.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.AvatarTraits{},
		&models.RankingV1{},
		&models.RankingV2{},
		&models.BadgeSupply{},
		&models.ProgressEvent{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	seed := models.DefaultBadgeSupply()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed badge supply: %w", err)
	}
	return nil
}
