package progression

import (
	"fmt"

	"github.com/gosimple/slug"
)

// AssetID identifies one of the fungible assets sold by the treasury.
type AssetID uint8

const (
	AssetIDCard        AssetID = 1
	AssetBadgeBronze   AssetID = 2
	AssetBadgeSilver   AssetID = 3
	AssetBadgeGold     AssetID = 4
	AssetBadgePlatinum AssetID = 5
	AssetBadgeDiamond  AssetID = 6
	AssetScanner       AssetID = 7
)

// Prices in units of the in-game currency.
const (
	PriceIDCard        uint64 = 60
	PriceBadgeBronze   uint64 = 60
	PriceBadgeSilver   uint64 = 150
	PriceBadgeGold     uint64 = 210
	PriceBadgePlatinum uint64 = 405
	PriceBadgeDiamond  uint64 = 660
	PriceScanner       uint64 = 30
)

// Supply caps per badge tier.
const (
	CapBronze   uint16 = 3000
	CapSilver   uint16 = 2100
	CapGold     uint16 = 1350
	CapPlatinum uint16 = 750
	CapDiamond  uint16 = 300
)

// SupplyCap returns the fixed cap of a tier, zero for anything else.
func SupplyCap(t Tier) uint16 {
	switch t {
	case TierBronze:
		return CapBronze
	case TierSilver:
		return CapSilver
	case TierGold:
		return CapGold
	case TierPlatinum:
		return CapPlatinum
	case TierDiamond:
		return CapDiamond
	}
	return 0
}

// AssetDescriptor is the catalog entry for one asset.
type AssetDescriptor struct {
	ID        AssetID `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Mint      string  `json:"mint"`
	Price     uint64  `json:"price"`
	Tier      Tier    `json:"tier,omitempty"`
	SupplyCap uint16  `json:"supply_cap,omitempty"`
}

func (d AssetDescriptor) IsBadge() bool {
	return d.Tier.Valid()
}

type assetSpec struct {
	id    AssetID
	name  string
	price uint64
	tier  Tier
}

var assetSpecs = []assetSpec{
	{AssetIDCard, "ID Card", PriceIDCard, TierNone},
	{AssetBadgeBronze, "Bronze Badge", PriceBadgeBronze, TierBronze},
	{AssetBadgeSilver, "Silver Badge", PriceBadgeSilver, TierSilver},
	{AssetBadgeGold, "Gold Badge", PriceBadgeGold, TierGold},
	{AssetBadgePlatinum, "Platinum Badge", PriceBadgePlatinum, TierPlatinum},
	{AssetBadgeDiamond, "Diamond Badge", PriceBadgeDiamond, TierDiamond},
	{AssetScanner, "Scanner", PriceScanner, TierNone},
}

// Catalog is a read-only registry of asset descriptors. Safe for concurrent use.
type Catalog struct {
	byID   map[AssetID]AssetDescriptor
	byTier map[Tier]AssetID
	order  []AssetID
}

// NewCatalog builds the catalog with the canonical mint identity of each
// asset. Assets missing from mints get an empty identity, which no token
// can ever match.
func NewCatalog(mints map[AssetID]string) *Catalog {
	c := &Catalog{
		byID:   make(map[AssetID]AssetDescriptor, len(assetSpecs)),
		byTier: make(map[Tier]AssetID, len(ladder)),
	}
	for _, s := range assetSpecs {
		d := AssetDescriptor{
			ID:    s.id,
			Code:  slug.Make(s.name),
			Name:  s.name,
			Mint:  mints[s.id],
			Price: s.price,
			Tier:  s.tier,
		}
		if s.tier.Valid() {
			d.SupplyCap = SupplyCap(s.tier)
			c.byTier[s.tier] = s.id
		}
		c.byID[s.id] = d
		c.order = append(c.order, s.id)
	}
	return c
}

// Describe returns the descriptor of id or ErrInvalidAssetID.
func (c *Catalog) Describe(id AssetID) (AssetDescriptor, error) {
	d, ok := c.byID[id]
	if !ok {
		return AssetDescriptor{}, fmt.Errorf("%w: %d", ErrInvalidAssetID, id)
	}
	return d, nil
}

func (c *Catalog) Price(id AssetID) (uint64, error) {
	d, err := c.Describe(id)
	if err != nil {
		return 0, err
	}
	return d.Price, nil
}

func (c *Catalog) CanonicalIdentity(id AssetID) (string, error) {
	d, err := c.Describe(id)
	if err != nil {
		return "", err
	}
	return d.Mint, nil
}

// CheckIdentity rejects a caller-supplied token identity that is not the
// canonical mint of the named asset.
func (c *Catalog) CheckIdentity(id AssetID, given string) (AssetDescriptor, error) {
	d, err := c.Describe(id)
	if err != nil {
		return AssetDescriptor{}, err
	}
	if d.Mint == "" || given != d.Mint {
		return AssetDescriptor{}, fmt.Errorf("%w: %s got %q", ErrAssetIdentityMismatch, d.Code, given)
	}
	return d, nil
}

// BadgeFor returns the badge descriptor of a tier.
func (c *Catalog) BadgeFor(t Tier) (AssetDescriptor, error) {
	id, ok := c.byTier[t]
	if !ok {
		return AssetDescriptor{}, fmt.Errorf("%w: %q", ErrInvalidTier, string(t))
	}
	return c.byID[id], nil
}

// Badges lists badge descriptors from Bronze to Diamond.
func (c *Catalog) Badges() []AssetDescriptor {
	out := make([]AssetDescriptor, 0, len(ladder))
	for _, t := range ladder {
		out = append(out, c.byID[c.byTier[t]])
	}
	return out
}

// All lists every descriptor in asset id order.
func (c *Catalog) All() []AssetDescriptor {
	out := make([]AssetDescriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
