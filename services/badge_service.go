package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"avatar-progression/models"
	"avatar-progression/progression"

	"gorm.io/gorm"
)

// ErrBadgeNotPurchasable is returned when a badge is bought outside the
// avatar mint flow.
var ErrBadgeNotPurchasable = errors.New("badges can only be minted against an avatar")

type BadgeService struct {
	DB              *gorm.DB
	Catalog         *progression.Catalog
	Supply          SupplyStore
	Verifier        progression.Verifier
	Gateway         TokenGateway
	Generation      Generation
	MetadataBaseURL string
}

func NewBadgeService(db *gorm.DB, catalog *progression.Catalog, verifier progression.Verifier, gateway TokenGateway, gen Generation, metadataBaseURL string) *BadgeService {
	return &BadgeService{
		DB:              db,
		Catalog:         catalog,
		Verifier:        verifier,
		Gateway:         gateway,
		Generation:      gen,
		MetadataBaseURL: metadataBaseURL,
	}
}

func (s *BadgeService) badge(assetID progression.AssetID, givenMint string) (progression.AssetDescriptor, error) {
	d, err := s.Catalog.CheckIdentity(assetID, givenMint)
	if err != nil {
		return d, err
	}
	if !d.IsBadge() {
		return d, fmt.Errorf("%w: %s", progression.ErrNotABadge, d.Code)
	}
	return d, nil
}

// MintBadge sells one badge of the asset's tier to holder for avatarMint.
// The supply is taken first, so a sold-out tier reports exhaustion before
// any ranking rule is evaluated. Every step shares one transaction and a
// failure anywhere returns the supply.
func (s *BadgeService) MintBadge(ctx context.Context, holder, avatarMint string, assetID progression.AssetID, givenMint string) (RankingView, error) {
	d, err := s.badge(assetID, givenMint)
	if err != nil {
		return RankingView{}, err
	}
	if err := s.Verifier.VerifyAvatar(ctx, avatarMint, holder); err != nil {
		log.Printf("[BADGE] avatar %s rejected for %s: %v", avatarMint, holder, err)
		return RankingView{}, err
	}

	var view RankingView
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Supply.TryIncrement(tx, d.Tier); err != nil {
			return err
		}

		switch s.Generation {
		case GenerationV1:
			row, err := lockOrCreate(tx, avatarMint, &models.RankingV1{AvatarMint: avatarMint})
			if err != nil {
				return err
			}
			rec := row.Record()
			if err := rec.PrepareMint(d.Tier); err != nil {
				return err
			}
			row.Apply(rec)
			if err := tx.Save(row).Error; err != nil {
				return err
			}
			view = viewV1(avatarMint, rec)
		default:
			row, _, err := lockRankingV2(tx, avatarMint)
			if err != nil {
				return err
			}
			rec := row.Record()
			if err := rec.MarkMinted(d.Tier); err != nil {
				return err
			}
			row.Apply(rec)
			if err := tx.Save(row).Error; err != nil {
				return err
			}
			view = viewV2(avatarMint, rec)
		}

		if err := recordEvent(tx, &models.ProgressEvent{
			AvatarMint: avatarMint,
			Holder:     holder,
			Kind:       models.EventBadgeMinted,
			Tier:       d.Tier,
			AssetID:    uint8(d.ID),
			Price:      d.Price,
			Generation: string(s.Generation),
		}); err != nil {
			return err
		}

		return s.Gateway.Mint(ctx, MintOrder{Mint: d.Mint, Recipient: holder, Amount: 1, Price: d.Price})
	})
	if err != nil {
		log.Printf("[BADGE] mint %s for %s failed: %v", d.Tier, avatarMint, err)
		return RankingView{}, err
	}

	log.Printf("[BADGE] 🎖️ %s minted for avatar %s (%d)", d.Name, avatarMint, d.Price)
	return view, nil
}

// MergeBadge burns one badge held by holder and advances the avatar's rank
// to the badge's tier.
func (s *BadgeService) MergeBadge(ctx context.Context, holder, avatarMint string, assetID progression.AssetID, givenMint string) (RankingView, error) {
	d, err := s.badge(assetID, givenMint)
	if err != nil {
		return RankingView{}, err
	}
	if err := s.Verifier.VerifyAvatar(ctx, avatarMint, holder); err != nil {
		return RankingView{}, err
	}
	if err := s.Verifier.VerifyToken(ctx, d.Mint, holder); err != nil {
		log.Printf("[BADGE] %s holds no %s: %v", holder, d.Code, err)
		return RankingView{}, err
	}

	var view RankingView
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		switch s.Generation {
		case GenerationV1:
			row, err := lockOrCreate(tx, avatarMint, &models.RankingV1{AvatarMint: avatarMint})
			if err != nil {
				return err
			}
			rec := row.Record()
			if err := rec.Redeem(d.Tier); err != nil {
				return err
			}
			row.Apply(rec)
			if err := tx.Save(row).Error; err != nil {
				return err
			}
			view = viewV1(avatarMint, rec)
		default:
			row, _, err := lockRankingV2(tx, avatarMint)
			if err != nil {
				return err
			}
			rec := row.Record()
			if err := rec.UpdateRank(d.Tier); err != nil {
				return err
			}
			now := time.Now()
			row.Apply(rec)
			row.LastRankUpAt = &now
			if err := tx.Save(row).Error; err != nil {
				return err
			}
			view = viewV2(avatarMint, rec)
		}

		if err := recordEvent(tx, &models.ProgressEvent{
			AvatarMint: avatarMint,
			Holder:     holder,
			Kind:       models.EventBadgeRedeemed,
			Tier:       d.Tier,
			AssetID:    uint8(d.ID),
			Generation: string(s.Generation),
		}); err != nil {
			return err
		}

		if err := s.Gateway.Burn(ctx, BurnOrder{Mint: d.Mint, Holder: holder, Amount: 1}); err != nil {
			return err
		}
		return s.Gateway.UpdateMetadata(ctx, avatarMint, metadataURI(s.MetadataBaseURL, avatarMint))
	})
	if err != nil {
		return RankingView{}, err
	}

	log.Printf("[BADGE] ⬆️ avatar %s ranked up to %s", avatarMint, d.Tier.DisplayName())
	return view, nil
}

// Purchase sells one non-badge asset (ID card, scanner) to holder.
func (s *BadgeService) Purchase(ctx context.Context, holder string, assetID progression.AssetID, givenMint string) (progression.AssetDescriptor, error) {
	d, err := s.Catalog.CheckIdentity(assetID, givenMint)
	if err != nil {
		return progression.AssetDescriptor{}, err
	}
	if d.IsBadge() {
		return progression.AssetDescriptor{}, fmt.Errorf("%w: %s", ErrBadgeNotPurchasable, d.Code)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := recordEvent(tx, &models.ProgressEvent{
			Holder:  holder,
			Kind:    models.EventAssetPurchased,
			AssetID: uint8(d.ID),
			Price:   d.Price,
		}); err != nil {
			return err
		}
		return s.Gateway.Mint(ctx, MintOrder{Mint: d.Mint, Recipient: holder, Amount: 1, Price: d.Price})
	})
	if err != nil {
		return progression.AssetDescriptor{}, err
	}

	log.Printf("[PURCHASE] %s bought %s for %d", holder, d.Name, d.Price)
	return d, nil
}
