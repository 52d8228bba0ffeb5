package services

import (
	"fmt"

	"avatar-progression/models"
	"avatar-progression/progression"

	"gorm.io/gorm"
)

// SupplyStore is the database-backed badge supply ledger.
type SupplyStore struct{}

// TryIncrement takes one badge of t from the supply inside tx. The
// conditional update is a single statement, so two concurrent mints of the
// same tier serialize on the tier's row and can never both pass the cap.
func (SupplyStore) TryIncrement(tx *gorm.DB, t progression.Tier) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", progression.ErrInvalidTier, string(t))
	}
	res := tx.Model(&models.BadgeSupply{}).
		Where("tier = ? AND minted < cap", t).
		Update("minted", gorm.Expr("minted + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s cap %d reached", progression.ErrSupplyExhausted, t, progression.SupplyCap(t))
	}
	return nil
}

// Snapshot reads all counters.
func (SupplyStore) Snapshot(db *gorm.DB) (progression.SupplyCounter, error) {
	var rows []models.BadgeSupply
	if err := db.Find(&rows).Error; err != nil {
		return progression.SupplyCounter{}, err
	}
	var c progression.SupplyCounter
	for _, r := range rows {
		c.Set(r.Tier, uint16(r.Minted))
	}
	return c, nil
}

// SupplyLine is one tier of the public supply report.
type SupplyLine struct {
	Tier      progression.Tier `json:"tier"`
	Name      string           `json:"name"`
	Minted    uint16           `json:"minted"`
	Cap       uint16           `json:"cap"`
	Remaining uint16           `json:"remaining"`
}

// Report expands a snapshot into ladder order.
func (s SupplyStore) Report(db *gorm.DB) ([]SupplyLine, error) {
	c, err := s.Snapshot(db)
	if err != nil {
		return nil, err
	}
	lines := make([]SupplyLine, 0, 5)
	for _, t := range progression.Tiers() {
		lines = append(lines, SupplyLine{
			Tier:      t,
			Name:      t.DisplayName(),
			Minted:    c.Get(t),
			Cap:       progression.SupplyCap(t),
			Remaining: c.Remaining(t),
		})
	}
	return lines, nil
}
