package progression

import "fmt"

// RankRecordV1 is the first-generation ranking record. Pending is set between
// a badge mint and its redemption and blocks any further mint.
type RankRecordV1 struct {
	Rank    Tier `json:"rank"`
	Pending bool `json:"pending"`
}

// advanceCheck is the strict one-rung rule shared by both generations.
func advanceCheck(rank, requested Tier) error {
	if !requested.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTier, string(requested))
	}
	next, ok := NextTier(rank)
	if !ok || next != requested {
		return sequenceError(rank, requested)
	}
	return nil
}

// MintEligible reports whether a badge of tier t may be minted for this record.
func (r RankRecordV1) MintEligible(t Tier) error {
	return advanceCheck(r.Rank, t)
}

// MarkPending flags an outstanding badge.
func (r *RankRecordV1) MarkPending() error {
	if r.Pending {
		return ErrAlreadyPending
	}
	r.Pending = true
	return nil
}

// PrepareMint runs MintEligible and MarkPending as one unit.
func (r *RankRecordV1) PrepareMint(t Tier) error {
	if err := r.MintEligible(t); err != nil {
		return err
	}
	return r.MarkPending()
}

// Redeem advances the rank to t and clears the pending flag.
func (r *RankRecordV1) Redeem(t Tier) error {
	if err := r.MintEligible(t); err != nil {
		return err
	}
	r.Rank = t
	r.Pending = false
	return nil
}
