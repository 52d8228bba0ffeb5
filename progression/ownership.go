package progression

import (
	"context"
	"fmt"
)

// CollectionRef is the collection a token's metadata claims membership of.
type CollectionRef struct {
	Key      string `json:"key"`
	Verified bool   `json:"verified"`
}

// Holding is a token balance as reported by the chain indexer.
type Holding struct {
	Mint       string         `json:"mint"`
	Holder     string         `json:"holder"`
	Amount     uint64         `json:"amount"`
	Collection *CollectionRef `json:"collection,omitempty"`
}

// Collections are the verified collection keys the service accepts.
type Collections struct {
	Avatar   string
	Skin     string
	Clothing string
	Eyes     string
	Hat      string
	Mouth    string
}

// TraitIDForCollection maps a trait collection key to its trait slot.
func (c Collections) TraitIDForCollection(ref *CollectionRef) (TraitID, error) {
	if ref == nil || !ref.Verified || ref.Key == "" {
		return 0, fmt.Errorf("%w: trait is not in a verified collection", ErrWrongCollection)
	}
	switch ref.Key {
	case c.Skin:
		return TraitSkin, nil
	case c.Clothing:
		return TraitClothing, nil
	case c.Eyes:
		return TraitEyes, nil
	case c.Hat:
		return TraitHat, nil
	case c.Mouth:
		return TraitMouth, nil
	}
	return 0, fmt.Errorf("%w: unknown trait collection %s", ErrWrongCollection, ref.Key)
}

func checkIdentity(h Holding, expectedMint, expectedHolder string) error {
	if h.Mint != expectedMint {
		return fmt.Errorf("%w: want %s, got %s", ErrWrongMintIdentity, expectedMint, h.Mint)
	}
	if h.Holder != expectedHolder {
		return fmt.Errorf("%w: %s", ErrWrongHolder, h.Mint)
	}
	return nil
}

// VerifyHolds checks that h proves holder owns exactly one expectedMint token
// belonging to the verified expectedCollection.
func VerifyHolds(h Holding, expectedMint, expectedHolder, expectedCollection string) error {
	if err := checkIdentity(h, expectedMint, expectedHolder); err != nil {
		return err
	}
	if h.Amount != 1 {
		return fmt.Errorf("%w: %s holds %d", ErrAmountNotExactlyOne, h.Mint, h.Amount)
	}
	if h.Collection == nil || !h.Collection.Verified || h.Collection.Key != expectedCollection {
		return fmt.Errorf("%w: %s", ErrWrongCollection, h.Mint)
	}
	return nil
}

// Verifier proves token ownership on behalf of the services.
type Verifier interface {
	VerifyAvatar(ctx context.Context, mint, holder string) error
	VerifyTrait(ctx context.Context, mint, holder string) (TraitID, error)
	VerifyToken(ctx context.Context, mint, holder string) error
}

// HoldingSource fetches a single holding. Implemented by the indexer client.
type HoldingSource interface {
	Holding(ctx context.Context, mint, holder string) (Holding, error)
}

// HoldingVerifier implements Verifier on top of any HoldingSource.
type HoldingVerifier struct {
	Source      HoldingSource
	Collections Collections
}

func (v *HoldingVerifier) VerifyAvatar(ctx context.Context, mint, holder string) error {
	h, err := v.Source.Holding(ctx, mint, holder)
	if err != nil {
		return err
	}
	return VerifyHolds(h, mint, holder, v.Collections.Avatar)
}

// VerifyTrait derives the trait slot from the token's own collection, then
// verifies the holding against that collection.
func (v *HoldingVerifier) VerifyTrait(ctx context.Context, mint, holder string) (TraitID, error) {
	h, err := v.Source.Holding(ctx, mint, holder)
	if err != nil {
		return 0, err
	}
	id, err := v.Collections.TraitIDForCollection(h.Collection)
	if err != nil {
		return 0, err
	}
	if err := VerifyHolds(h, mint, holder, h.Collection.Key); err != nil {
		return 0, err
	}
	return id, nil
}

func (v *HoldingVerifier) VerifyToken(ctx context.Context, mint, holder string) error {
	h, err := v.Source.Holding(ctx, mint, holder)
	if err != nil {
		return err
	}
	return VerifyBalance(h, mint, holder)
}

// VerifyBalance checks a fungible holding: right mint, right holder and at
// least one unit to burn.
func VerifyBalance(h Holding, expectedMint, expectedHolder string) error {
	if err := checkIdentity(h, expectedMint, expectedHolder); err != nil {
		return err
	}
	if h.Amount == 0 {
		return fmt.Errorf("%w: %s", ErrInsufficientBalance, h.Mint)
	}
	return nil
}
