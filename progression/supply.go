package progression

import (
	"fmt"
	"sync"
)

// SupplyCounter is the number of badges ever minted per tier.
type SupplyCounter struct {
	Bronze   uint16 `json:"bronze"`
	Silver   uint16 `json:"silver"`
	Gold     uint16 `json:"gold"`
	Platinum uint16 `json:"platinum"`
	Diamond  uint16 `json:"diamond"`
}

func (c *SupplyCounter) slot(t Tier) *uint16 {
	switch t {
	case TierBronze:
		return &c.Bronze
	case TierSilver:
		return &c.Silver
	case TierGold:
		return &c.Gold
	case TierPlatinum:
		return &c.Platinum
	case TierDiamond:
		return &c.Diamond
	}
	return nil
}

// Get returns the count for t, zero for an invalid tier.
func (c SupplyCounter) Get(t Tier) uint16 {
	if p := c.slot(t); p != nil {
		return *p
	}
	return 0
}

// Set overwrites the count of t. Used when loading a stored counter.
func (c *SupplyCounter) Set(t Tier, n uint16) {
	if p := c.slot(t); p != nil {
		*p = n
	}
}

// Remaining returns how many badges of t can still be minted.
func (c SupplyCounter) Remaining(t Tier) uint16 {
	n := c.Get(t)
	if limit := SupplyCap(t); n < limit {
		return limit - n
	}
	return 0
}

// Check fails when t is exhausted.
func (c SupplyCounter) Check(t Tier) error {
	p := c.slot(t)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTier, string(t))
	}
	if *p >= SupplyCap(t) {
		return fmt.Errorf("%w: %s cap %d reached", ErrSupplyExhausted, t, SupplyCap(t))
	}
	return nil
}

// Increment adds exactly one to t, or fails without touching the counter.
func (c *SupplyCounter) Increment(t Tier) error {
	if err := c.Check(t); err != nil {
		return err
	}
	*c.slot(t)++
	return nil
}

// SupplyLedger is the shared per-tier counter consulted by badge mints.
type SupplyLedger interface {
	TryIncrement(t Tier) error
	Snapshot() SupplyCounter
}

// MemoryLedger keeps the counters in process. Each tier has its own lock so
// mints of different tiers never contend.
type MemoryLedger struct {
	locks   map[Tier]*sync.Mutex
	counter SupplyCounter
}

func NewMemoryLedger(start SupplyCounter) *MemoryLedger {
	l := &MemoryLedger{
		locks:   make(map[Tier]*sync.Mutex, len(ladder)),
		counter: start,
	}
	for _, t := range ladder {
		l.locks[t] = &sync.Mutex{}
	}
	return l
}

func (l *MemoryLedger) TryIncrement(t Tier) error {
	mu, ok := l.locks[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTier, string(t))
	}
	mu.Lock()
	defer mu.Unlock()
	return l.counter.Increment(t)
}

// Snapshot copies the counters, locking each tier in ladder order.
func (l *MemoryLedger) Snapshot() SupplyCounter {
	var out SupplyCounter
	for _, t := range ladder {
		mu := l.locks[t]
		mu.Lock()
		*out.slot(t) = *l.counter.slot(t)
		mu.Unlock()
	}
	return out
}
