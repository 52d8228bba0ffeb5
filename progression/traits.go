package progression

import "fmt"

// TraitID selects one of the five trait slots of an avatar.
type TraitID uint8

const (
	TraitSkin     TraitID = 1
	TraitClothing TraitID = 2
	TraitEyes     TraitID = 3
	TraitHat      TraitID = 4
	TraitMouth    TraitID = 5
)

func (id TraitID) Valid() bool {
	return id >= TraitSkin && id <= TraitMouth
}

func (id TraitID) String() string {
	switch id {
	case TraitSkin:
		return "skin"
	case TraitClothing:
		return "clothing"
	case TraitEyes:
		return "eyes"
	case TraitHat:
		return "hat"
	case TraitMouth:
		return "mouth"
	}
	return fmt.Sprintf("trait(%d)", uint8(id))
}

// TraitSlots records which traits have been merged.
type TraitSlots struct {
	Skin     bool `json:"skin"`
	Clothing bool `json:"clothing"`
	Eyes     bool `json:"eyes"`
	Hat      bool `json:"hat"`
	Mouth    bool `json:"mouth"`
}

func (s *TraitSlots) slot(id TraitID) *bool {
	switch id {
	case TraitSkin:
		return &s.Skin
	case TraitClothing:
		return &s.Clothing
	case TraitEyes:
		return &s.Eyes
	case TraitHat:
		return &s.Hat
	case TraitMouth:
		return &s.Mouth
	}
	return nil
}

// Has reports whether id is merged. Invalid ids are never merged.
func (s TraitSlots) Has(id TraitID) bool {
	if p := s.slot(id); p != nil {
		return *p
	}
	return false
}

func (s TraitSlots) Complete() bool {
	return s.Skin && s.Clothing && s.Eyes && s.Hat && s.Mouth
}

// TraitState is either uninitialized or initialized with slots.
// The zero value is Uninitialized.
type TraitState struct {
	initialized bool
	slots       TraitSlots
}

func Uninitialized() TraitState {
	return TraitState{}
}

func Initialized(slots TraitSlots) TraitState {
	return TraitState{initialized: true, slots: slots}
}

func (s TraitState) IsInitialized() bool {
	return s.initialized
}

// Slots returns the slots and whether the state is initialized.
func (s TraitState) Slots() (TraitSlots, bool) {
	return s.slots, s.initialized
}

// Initialize moves an uninitialized state to all-empty slots.
func Initialize(state TraitState) (TraitState, error) {
	if state.initialized {
		return state, ErrAlreadyInitialized
	}
	return Initialized(TraitSlots{}), nil
}

// Merge fills the slot of id, initializing the state first if needed.
// On error the returned state is the input unchanged.
func Merge(state TraitState, id TraitID) (TraitState, error) {
	if !id.Valid() {
		return state, fmt.Errorf("%w: %d", ErrInvalidTraitID, uint8(id))
	}
	next := state
	if !next.initialized {
		next = Initialized(TraitSlots{})
	}
	p := next.slots.slot(id)
	if *p {
		return state, fmt.Errorf("%w: %s", ErrAlreadyMerged, id)
	}
	*p = true
	return next, nil
}
