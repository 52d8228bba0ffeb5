package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierLadder(t *testing.T) {
	prev, ok := TierBronze.Predecessor()
	assert.False(t, ok)
	assert.Equal(t, TierNone, prev)

	next, ok := TierDiamond.Successor()
	assert.False(t, ok)
	assert.Equal(t, TierNone, next)

	p, ok := TierGold.Predecessor()
	require.True(t, ok)
	assert.Equal(t, TierSilver, p)

	assert.True(t, TierGold.AtLeast(TierSilver))
	assert.True(t, TierGold.AtLeast(TierGold))
	assert.False(t, TierSilver.AtLeast(TierGold))
	assert.False(t, TierNone.AtLeast(TierBronze))

	assert.Equal(t, []Tier{TierBronze, TierSilver, TierGold}, TiersThrough(TierGold))
	assert.Empty(t, TiersThrough(TierNone))
	assert.Equal(t, "Platinum", TierPlatinum.DisplayName())
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Gold ")
	require.NoError(t, err)
	assert.Equal(t, TierGold, tier)

	_, err = ParseTier("mythril")
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, err = ParseTier("")
	assert.ErrorIs(t, err, ErrInvalidTier)
}

// rankBelow is the only rank from which t may be reached.
func rankBelow(t Tier) Tier {
	prev, _ := t.Predecessor()
	return prev
}

func TestAdvanceOnlyFromPredecessor(t *testing.T) {
	candidates := append([]Tier{TierNone}, Tiers()...)
	for _, target := range Tiers() {
		for _, rank := range candidates {
			want := rank == rankBelow(target)

			v1 := RankRecordV1{Rank: rank}
			err := v1.Redeem(target)
			if want {
				require.NoError(t, err, "v1 %s -> %s", rank, target)
				assert.Equal(t, target, v1.Rank)
			} else {
				require.ErrorIs(t, err, ErrSequenceViolation, "v1 %s -> %s", rank, target)
				assert.Equal(t, rank, v1.Rank)
			}

			v2 := RankRecordV2{Rank: rank}
			err = v2.UpdateRank(target)
			if want {
				require.NoError(t, err, "v2 %s -> %s", rank, target)
				assert.Equal(t, target, v2.Rank)
			} else {
				require.ErrorIs(t, err, ErrSequenceViolation, "v2 %s -> %s", rank, target)
				assert.Equal(t, rank, v2.Rank)
			}
		}
	}
}

func TestV1Scenario(t *testing.T) {
	var rec RankRecordV1

	require.NoError(t, rec.MintEligible(TierBronze))
	require.NoError(t, rec.MarkPending())
	require.ErrorIs(t, rec.MarkPending(), ErrAlreadyPending)

	require.NoError(t, rec.Redeem(TierBronze))
	assert.Equal(t, TierBronze, rec.Rank)
	assert.False(t, rec.Pending)

	assert.NoError(t, rec.MintEligible(TierSilver))
}

func TestV1PrepareMintLeavesRecordOnFailure(t *testing.T) {
	rec := RankRecordV1{Rank: TierBronze}
	require.ErrorIs(t, rec.PrepareMint(TierGold), ErrSequenceViolation)
	assert.False(t, rec.Pending)

	require.NoError(t, rec.PrepareMint(TierSilver))
	assert.True(t, rec.Pending)

	// a second badge of any tier is blocked while one is outstanding
	require.ErrorIs(t, rec.PrepareMint(TierSilver), ErrAlreadyPending)
}

func TestV2MintEligible(t *testing.T) {
	rec := RankRecordV2{}
	require.NoError(t, rec.MintEligible(TierBronze))
	require.ErrorIs(t, rec.MintEligible(TierSilver), ErrSequenceViolation)

	require.NoError(t, rec.MarkMinted(TierBronze))
	require.ErrorIs(t, rec.MarkMinted(TierBronze), ErrAlreadyMinted)

	require.NoError(t, rec.UpdateRank(TierBronze))
	require.NoError(t, rec.MarkMinted(TierSilver))

	rec.Rank = TierGold
	assert.NoError(t, rec.MintEligible(TierPlatinum))
	// rank above the predecessor still qualifies
	rec.Rank = TierDiamond
	assert.NoError(t, rec.MintEligible(TierGold))

	assert.ErrorIs(t, rec.MintEligible("mythril"), ErrInvalidTier)
}

func TestV2UpdateRankIgnoresMintedFlags(t *testing.T) {
	rec := RankRecordV2{}
	require.NoError(t, rec.UpdateRank(TierBronze))
	assert.False(t, rec.Minted.Bronze)
}

func TestMigrateFromV1Scenario(t *testing.T) {
	v2 := MigrateFromV1(RankRecordV2{}, RankRecordV1{Rank: TierGold})

	assert.True(t, v2.Minted.Bronze)
	assert.True(t, v2.Minted.Silver)
	assert.True(t, v2.Minted.Gold)
	assert.False(t, v2.Minted.Platinum)
	assert.False(t, v2.Minted.Diamond)
	assert.Equal(t, TierGold, v2.Rank)
}

func TestMigrateFromV1Idempotent(t *testing.T) {
	sources := []RankRecordV1{{}, {Rank: TierBronze, Pending: true}, {Rank: TierPlatinum}, {Rank: TierDiamond}}
	starts := []RankRecordV2{{}, {Rank: TierSilver}, {Minted: MintedFlags{Diamond: true}}}
	for _, v1 := range sources {
		for _, start := range starts {
			once := MigrateFromV1(start, v1)
			twice := MigrateFromV1(once, v1)
			assert.Equal(t, once, twice)
		}
	}
}

func TestMigrateFromV1KeepsEstablishedRank(t *testing.T) {
	v2 := RankRecordV2{Rank: TierBronze, Minted: MintedFlags{Diamond: true}}
	out := MigrateFromV1(v2, RankRecordV1{Rank: TierGold})

	assert.Equal(t, TierBronze, out.Rank)
	assert.True(t, out.Minted.Diamond)
	assert.True(t, out.Minted.Gold)
}

func TestMigrateFromEmptyV1(t *testing.T) {
	out := MigrateFromV1(RankRecordV2{}, RankRecordV1{})
	assert.Equal(t, RankRecordV2{}, out)
}
