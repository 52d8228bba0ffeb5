package models

import (
	"avatar-progression/progression"

	"gorm.io/gorm"
)

// AvatarTraits is the stored trait state of one avatar, keyed by its mint.
// A row with Initialized=false is the Uninitialized state.
type AvatarTraits struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	AvatarMint  string `gorm:"uniqueIndex;not null" json:"avatar_mint"`
	Initialized bool   `gorm:"not null;default:false" json:"initialized"`

	Skin     bool `gorm:"not null;default:false" json:"skin"`
	Clothing bool `gorm:"not null;default:false" json:"clothing"`
	Eyes     bool `gorm:"not null;default:false" json:"eyes"`
	Hat      bool `gorm:"not null;default:false" json:"hat"`
	Mouth    bool `gorm:"not null;default:false" json:"mouth"`

	Timestamps
}

func (a *AvatarTraits) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}

// State converts the row into the core tagged state.
func (a *AvatarTraits) State() progression.TraitState {
	if !a.Initialized {
		return progression.Uninitialized()
	}
	return progression.Initialized(progression.TraitSlots{
		Skin:     a.Skin,
		Clothing: a.Clothing,
		Eyes:     a.Eyes,
		Hat:      a.Hat,
		Mouth:    a.Mouth,
	})
}

// Apply writes a core state back onto the row.
func (a *AvatarTraits) Apply(s progression.TraitState) {
	slots, ok := s.Slots()
	a.Initialized = ok
	a.Skin = slots.Skin
	a.Clothing = slots.Clothing
	a.Eyes = slots.Eyes
	a.Hat = slots.Hat
	a.Mouth = slots.Mouth
}
