package services

import (
	"log"

	"avatar-progression/models"
	"avatar-progression/progression"

	"gorm.io/gorm"
)

// RankingView is the public shape of an avatar's ranking in either generation.
type RankingView struct {
	AvatarMint string                   `json:"avatar_mint"`
	Generation Generation               `json:"generation"`
	Rank       progression.Tier         `json:"rank"`
	RankName   string                   `json:"rank_name"`
	NextTier   progression.Tier         `json:"next_tier,omitempty"`
	Pending    bool                     `json:"pending,omitempty"`
	Minted     *progression.MintedFlags `json:"minted,omitempty"`
}

func newRankingView(avatarMint string, gen Generation, rank progression.Tier) RankingView {
	next, _ := progression.NextTier(rank)
	return RankingView{
		AvatarMint: avatarMint,
		Generation: gen,
		Rank:       rank,
		RankName:   rank.DisplayName(),
		NextTier:   next,
	}
}

func viewV1(avatarMint string, rec progression.RankRecordV1) RankingView {
	v := newRankingView(avatarMint, GenerationV1, rec.Rank)
	v.Pending = rec.Pending
	return v
}

func viewV2(avatarMint string, rec progression.RankRecordV2) RankingView {
	v := newRankingView(avatarMint, GenerationV2, rec.Rank)
	minted := rec.Minted
	v.Minted = &minted
	return v
}

type RankingService struct {
	DB         *gorm.DB
	Generation Generation
}

func NewRankingService(db *gorm.DB, gen Generation) *RankingService {
	return &RankingService{DB: db, Generation: gen}
}

// View returns the avatar's ranking. In v2 mode a V1 record that has not
// been migrated yet is folded in for display only.
func (s *RankingService) View(avatarMint string) (RankingView, error) {
	if s.Generation == GenerationV1 {
		row, found, err := findByAvatar[models.RankingV1](s.DB, avatarMint)
		if err != nil {
			return RankingView{}, err
		}
		var rec progression.RankRecordV1
		if found {
			rec = row.Record()
		}
		return viewV1(avatarMint, rec), nil
	}

	rec, err := peekRankingV2(s.DB, avatarMint)
	if err != nil {
		return RankingView{}, err
	}
	return viewV2(avatarMint, rec), nil
}

// MigrateAll folds every V1 ranking into its V2 record, batchSize rows at
// a time, each avatar in its own transaction. It returns how many V2
// records changed. Running it again is a no-op.
func (s *RankingService) MigrateAll(batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	var mints []string
	var v1Rows []models.RankingV1
	res := s.DB.Select("id", "avatar_mint").FindInBatches(&v1Rows, batchSize, func(tx *gorm.DB, batch int) error {
		for _, r := range v1Rows {
			mints = append(mints, r.AvatarMint)
		}
		return nil
	})
	if res.Error != nil {
		return 0, res.Error
	}

	migrated := 0
	for _, mint := range mints {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			row, changed, err := lockRankingV2(tx, mint)
			if err != nil || !changed {
				return err
			}
			migrated++
			return recordEvent(tx, &models.ProgressEvent{
				AvatarMint: mint,
				Holder:     "system",
				Kind:       models.EventRankMigrated,
				Tier:       row.Rank,
				Generation: string(GenerationV2),
			})
		})
		if err != nil {
			log.Printf("[MIGRATE] ❌ avatar %s: %v", mint, err)
			return migrated, err
		}
	}

	if migrated > 0 {
		log.Printf("[MIGRATE] ✅ %d rankings migrated to v2", migrated)
	}
	return migrated, nil
}

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// History returns one page of the avatar's events, newest first, and the
// total event count.
func (s *ProgressService) History(avatarMint string, page, size int) ([]models.ProgressEvent, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var total int64
	q := s.DB.Model(&models.ProgressEvent{}).Where("avatar_mint = ?", avatarMint)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.ProgressEvent
	err := s.DB.Where("avatar_mint = ?", avatarMint).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
