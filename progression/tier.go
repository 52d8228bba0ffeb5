// Package progression holds the avatar progression rules: trait merging,
// the badge ladder in both ranking generations, badge supply, the asset
// catalog and token ownership checks. It has no storage or transport.
package progression

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tier is a rung of the badge ladder. The zero value means "no rank yet".
type Tier string

const (
	TierNone     Tier = ""
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// ladder is the only source of ordering. Never compare tiers by value.
var ladder = []Tier{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond}

var titleCaser = cases.Title(language.English)

// Tiers returns the ladder from lowest to highest.
func Tiers() []Tier {
	out := make([]Tier, len(ladder))
	copy(out, ladder)
	return out
}

// ParseTier accepts any casing of a tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return TierNone, fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
	return t, nil
}

func (t Tier) position() int {
	for i, rung := range ladder {
		if rung == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the five ladder tiers. TierNone is not valid.
func (t Tier) Valid() bool {
	return t.position() >= 0
}

// IsSet reports whether a rank has been reached at all.
func (t Tier) IsSet() bool {
	return t != TierNone
}

// Predecessor returns the tier directly below t. Bronze is the floor.
func (t Tier) Predecessor() (Tier, bool) {
	i := t.position()
	if i <= 0 {
		return TierNone, false
	}
	return ladder[i-1], true
}

// Successor returns the tier directly above t. Diamond is the ceiling.
func (t Tier) Successor() (Tier, bool) {
	i := t.position()
	if i < 0 || i == len(ladder)-1 {
		return TierNone, false
	}
	return ladder[i+1], true
}

// AtLeast reports whether t is at or above other on the ladder.
// An unset rank is below everything.
func (t Tier) AtLeast(other Tier) bool {
	if !other.Valid() {
		return false
	}
	return t.position() >= other.position()
}

// NextTier returns the only tier a record with the given rank may advance to.
func NextTier(rank Tier) (Tier, bool) {
	if !rank.IsSet() {
		return TierBronze, true
	}
	return rank.Successor()
}

// TiersThrough returns every tier from Bronze up to and including t.
func TiersThrough(t Tier) []Tier {
	i := t.position()
	if i < 0 {
		return nil
	}
	return Tiers()[:i+1]
}

func (t Tier) DisplayName() string {
	if !t.IsSet() {
		return "Unranked"
	}
	return titleCaser.String(string(t))
}

func (t Tier) String() string {
	if !t.IsSet() {
		return "none"
	}
	return string(t)
}
