package progression

import "fmt"

// MintedFlags records which badge tiers were ever minted for an avatar.
type MintedFlags struct {
	Bronze   bool `json:"bronze"`
	Silver   bool `json:"silver"`
	Gold     bool `json:"gold"`
	Platinum bool `json:"platinum"`
	Diamond  bool `json:"diamond"`
}

func (m *MintedFlags) slot(t Tier) *bool {
	switch t {
	case TierBronze:
		return &m.Bronze
	case TierSilver:
		return &m.Silver
	case TierGold:
		return &m.Gold
	case TierPlatinum:
		return &m.Platinum
	case TierDiamond:
		return &m.Diamond
	}
	return nil
}

func (m MintedFlags) Has(t Tier) bool {
	if p := m.slot(t); p != nil {
		return *p
	}
	return false
}

// RankRecordV2 is the second-generation ranking record.
type RankRecordV2 struct {
	Rank   Tier        `json:"rank"`
	Minted MintedFlags `json:"minted"`
}

// MigrateFromV1 folds a V1 record into v2. Flags are only ever set, and an
// established v2 rank is never overwritten, so repeated calls with the same
// v1 are no-ops.
func MigrateFromV1(v2 RankRecordV2, v1 RankRecordV1) RankRecordV2 {
	out := v2
	for _, t := range TiersThrough(v1.Rank) {
		*out.Minted.slot(t) = true
	}
	if !out.Rank.IsSet() && v1.Rank.Valid() {
		out.Rank = v1.Rank
	}
	return out
}

// MintEligible reports whether a badge of tier t may be minted.
func (r RankRecordV2) MintEligible(t Tier) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTier, string(t))
	}
	if r.Minted.Has(t) {
		return fmt.Errorf("%w: %s", ErrAlreadyMinted, t)
	}
	prev, hasPrev := t.Predecessor()
	if hasPrev && !r.Rank.AtLeast(prev) {
		return sequenceError(r.Rank, t)
	}
	return nil
}

// MarkMinted checks eligibility and records the mint of t.
func (r *RankRecordV2) MarkMinted(t Tier) error {
	if err := r.MintEligible(t); err != nil {
		return err
	}
	*r.Minted.slot(t) = true
	return nil
}

// UpdateRank advances the rank by exactly one rung. Minted flags are not
// consulted: the burned badge token is the proof of redemption.
func (r *RankRecordV2) UpdateRank(t Tier) error {
	if err := advanceCheck(r.Rank, t); err != nil {
		return err
	}
	r.Rank = t
	return nil
}
