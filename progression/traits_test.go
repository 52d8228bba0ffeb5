package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEachTraitOnce(t *testing.T) {
	for id := TraitSkin; id <= TraitMouth; id++ {
		t.Run(id.String(), func(t *testing.T) {
			state, err := Merge(Uninitialized(), id)
			require.NoError(t, err)

			slots, ok := state.Slots()
			require.True(t, ok)
			for other := TraitSkin; other <= TraitMouth; other++ {
				assert.Equal(t, other == id, slots.Has(other), "slot %s", other)
			}

			again, err := Merge(state, id)
			require.ErrorIs(t, err, ErrAlreadyMerged)
			assert.Equal(t, state, again)
		})
	}
}

func TestMergeInvalidTraitID(t *testing.T) {
	full := Initialized(TraitSlots{Skin: true, Clothing: true, Eyes: true, Hat: true, Mouth: true})
	for _, state := range []TraitState{Uninitialized(), Initialized(TraitSlots{}), full} {
		for _, id := range []TraitID{0, 6, 9, 255} {
			next, err := Merge(state, id)
			require.ErrorIs(t, err, ErrInvalidTraitID)
			assert.Equal(t, state, next)
		}
	}
}

func TestMergeInvalidIDDoesNotInitialize(t *testing.T) {
	next, err := Merge(Uninitialized(), 0)
	require.Error(t, err)
	assert.False(t, next.IsInitialized())
}

func TestTraitMergeScenario(t *testing.T) {
	state := Uninitialized()
	var err error
	for _, id := range []TraitID{1, 2, 3, 4, 5} {
		state, err = Merge(state, id)
		require.NoError(t, err)
	}

	slots, ok := state.Slots()
	require.True(t, ok)
	assert.True(t, slots.Complete())

	_, err = Merge(state, 3)
	assert.ErrorIs(t, err, ErrAlreadyMerged)

	_, err = Merge(state, 9)
	assert.ErrorIs(t, err, ErrInvalidTraitID)
}

func TestInitialize(t *testing.T) {
	state, err := Initialize(Uninitialized())
	require.NoError(t, err)
	slots, ok := state.Slots()
	require.True(t, ok)
	assert.Equal(t, TraitSlots{}, slots)

	_, err = Initialize(state)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}
