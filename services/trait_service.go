package services

import (
	"context"
	"log"

	"avatar-progression/models"
	"avatar-progression/progression"

	"gorm.io/gorm"
)

type TraitService struct {
	DB              *gorm.DB
	Verifier        progression.Verifier
	Gateway         TokenGateway
	MetadataBaseURL string
}

func NewTraitService(db *gorm.DB, verifier progression.Verifier, gateway TokenGateway, metadataBaseURL string) *TraitService {
	return &TraitService{DB: db, Verifier: verifier, Gateway: gateway, MetadataBaseURL: metadataBaseURL}
}

// TraitView is the public shape of an avatar's trait state.
type TraitView struct {
	AvatarMint  string                 `json:"avatar_mint"`
	Initialized bool                   `json:"initialized"`
	Slots       progression.TraitSlots `json:"slots"`
	Complete    bool                   `json:"complete"`
}

func newTraitView(avatarMint string, state progression.TraitState) TraitView {
	slots, ok := state.Slots()
	return TraitView{
		AvatarMint:  avatarMint,
		Initialized: ok,
		Slots:       slots,
		Complete:    ok && slots.Complete(),
	}
}

// Get returns the stored trait state. An avatar never seen is Uninitialized.
func (s *TraitService) Get(avatarMint string) (TraitView, error) {
	row, found, err := findByAvatar[models.AvatarTraits](s.DB, avatarMint)
	if err != nil {
		return TraitView{}, err
	}
	if !found {
		return newTraitView(avatarMint, progression.Uninitialized()), nil
	}
	return newTraitView(avatarMint, row.State()), nil
}

// Initialize explicitly sets up an empty trait record for the avatar.
func (s *TraitService) Initialize(ctx context.Context, holder, avatarMint string) (TraitView, error) {
	if err := s.Verifier.VerifyAvatar(ctx, avatarMint, holder); err != nil {
		return TraitView{}, err
	}

	var view TraitView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		row, err := lockOrCreate(tx, avatarMint, &models.AvatarTraits{AvatarMint: avatarMint})
		if err != nil {
			return err
		}
		next, err := progression.Initialize(row.State())
		if err != nil {
			return err
		}
		row.Apply(next)
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		view = newTraitView(avatarMint, next)
		return nil
	})
	return view, err
}

// Merge attaches the trait token traitMint to the avatar and burns it. The
// trait kind comes from the token's verified collection, never from the caller.
func (s *TraitService) Merge(ctx context.Context, holder, avatarMint, traitMint string) (TraitView, error) {
	if err := s.Verifier.VerifyAvatar(ctx, avatarMint, holder); err != nil {
		log.Printf("[MERGE] avatar %s rejected for %s: %v", avatarMint, holder, err)
		return TraitView{}, err
	}
	traitID, err := s.Verifier.VerifyTrait(ctx, traitMint, holder)
	if err != nil {
		log.Printf("[MERGE] trait %s rejected for %s: %v", traitMint, holder, err)
		return TraitView{}, err
	}

	var view TraitView
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		row, err := lockOrCreate(tx, avatarMint, &models.AvatarTraits{AvatarMint: avatarMint})
		if err != nil {
			return err
		}
		next, err := progression.Merge(row.State(), traitID)
		if err != nil {
			return err
		}
		row.Apply(next)
		if err := tx.Save(row).Error; err != nil {
			return err
		}

		if err := recordEvent(tx, &models.ProgressEvent{
			AvatarMint: avatarMint,
			Holder:     holder,
			Kind:       models.EventTraitMerged,
			TraitID:    uint8(traitID),
		}); err != nil {
			return err
		}

		if err := s.Gateway.Burn(ctx, BurnOrder{Mint: traitMint, Holder: holder, Amount: 1}); err != nil {
			return err
		}
		if err := s.Gateway.UpdateMetadata(ctx, avatarMint, metadataURI(s.MetadataBaseURL, avatarMint)); err != nil {
			return err
		}
		view = newTraitView(avatarMint, next)
		return nil
	})
	if err != nil {
		return TraitView{}, err
	}

	log.Printf("[MERGE] ✅ %s merged into %s", traitID, avatarMint)
	return view, nil
}
