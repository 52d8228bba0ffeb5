package services

import (
	"context"
	"errors"
	"testing"

	"avatar-progression/models"
	"avatar-progression/progression"
	"avatar-progression/storetest"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	alice  = "wallet-alice"
	avatar = "avatar-1"
)

var testMints = map[progression.AssetID]string{
	progression.AssetIDCard:        "mint-id-card",
	progression.AssetBadgeBronze:   "mint-bronze",
	progression.AssetBadgeSilver:   "mint-silver",
	progression.AssetBadgeGold:     "mint-gold",
	progression.AssetBadgePlatinum: "mint-platinum",
	progression.AssetBadgeDiamond:  "mint-diamond",
	progression.AssetScanner:       "mint-scanner",
}

type fakeVerifier struct {
	holder   string
	traits   map[string]progression.TraitID
	balances map[string]uint64
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{
		holder:   alice,
		traits:   map[string]progression.TraitID{},
		balances: map[string]uint64{},
	}
}

func (v *fakeVerifier) VerifyAvatar(_ context.Context, _, holder string) error {
	if holder != v.holder {
		return progression.ErrWrongHolder
	}
	return nil
}

func (v *fakeVerifier) VerifyTrait(_ context.Context, mint, holder string) (progression.TraitID, error) {
	if holder != v.holder {
		return 0, progression.ErrWrongHolder
	}
	id, ok := v.traits[mint]
	if !ok {
		return 0, progression.ErrWrongCollection
	}
	return id, nil
}

func (v *fakeVerifier) VerifyToken(_ context.Context, mint, holder string) error {
	if holder != v.holder {
		return progression.ErrWrongHolder
	}
	if v.balances[mint] == 0 {
		return progression.ErrInsufficientBalance
	}
	return nil
}

type fakeGateway struct {
	err      error
	mints    []MintOrder
	burns    []BurnOrder
	metadata []string
}

func (g *fakeGateway) Mint(_ context.Context, o MintOrder) error {
	if g.err != nil {
		return g.err
	}
	g.mints = append(g.mints, o)
	return nil
}

func (g *fakeGateway) Burn(_ context.Context, o BurnOrder) error {
	if g.err != nil {
		return g.err
	}
	g.burns = append(g.burns, o)
	return nil
}

func (g *fakeGateway) UpdateMetadata(_ context.Context, avatarMint, uri string) error {
	if g.err != nil {
		return g.err
	}
	g.metadata = append(g.metadata, uri)
	return nil
}

var errGatewayDown = errors.New("gateway down")

func countEvents(t *testing.T, db *gorm.DB, kind models.EventKind) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.ProgressEvent{}).Where("kind = ?", kind).Count(&n).Error)
	return n
}

func supplyOf(t *testing.T, db *gorm.DB, tier progression.Tier) uint16 {
	t.Helper()
	c, err := SupplyStore{}.Snapshot(db)
	require.NoError(t, err)
	return c.Get(tier)
}

type badgeFixture struct {
	db       *gorm.DB
	svc      *BadgeService
	verifier *fakeVerifier
	gateway  *fakeGateway
}

func newBadgeFixture(t *testing.T, gen Generation) badgeFixture {
	t.Helper()
	db := storetest.NewDB(t)
	v := newFakeVerifier()
	g := &fakeGateway{}
	svc := NewBadgeService(db, progression.NewCatalog(testMints), v, g, gen, "https://cdn.test")
	return badgeFixture{db: db, svc: svc, verifier: v, gateway: g}
}
