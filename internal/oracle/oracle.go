// Package oracle owns the process-wide BTC price singleton. Reads are served
// from memory; writes validate, persist through the market repository, then
// swap the in-memory snapshot so risk checks pick the new price up
// immediately. Already-created loans keep their admission-time LTV snapshots.
package oracle

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"bbl-backend/internal/domain/market"
)

type Oracle struct {
	mu   sync.RWMutex
	repo market.Repository
	data market.Data
}

// New returns an oracle with a zero price; call Load to restore the persisted
// value. A nil repo keeps the oracle memory-only (tests).
func New(repo market.Repository) *Oracle {
	return &Oracle{repo: repo}
}

// Load restores the last persisted snapshot. A missing row is not an error:
// the oracle stays at its zero default until the first feed update.
func (o *Oracle) Load(ctx context.Context) error {
	if o.repo == nil {
		return nil
	}
	d, err := o.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	o.mu.Lock()
	o.data.BTCPriceUSD = d.BTCPriceUSD
	o.data.LastUpdated = d.LastUpdated
	o.mu.Unlock()
	return nil
}

// Snapshot never fails; before the first update it reports a zero price.
func (o *Oracle) Snapshot() market.Data {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.data
}

func (o *Oracle) Price() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.data.BTCPriceUSD
}

// Update overwrites the price. Non-positive values are rejected with
// market.ErrInvalidPrice and leave both the row and the snapshot untouched.
func (o *Oracle) Update(ctx context.Context, priceUSD float64) error {
	if priceUSD <= 0 {
		return market.ErrInvalidPrice
	}
	now := time.Now().UTC()
	if o.repo != nil {
		if err := o.persist(ctx, priceUSD, now); err != nil {
			return err
		}
	}
	o.mu.Lock()
	o.data.BTCPriceUSD = priceUSD
	o.data.LastUpdated = now
	o.mu.Unlock()
	return nil
}

func (o *Oracle) persist(ctx context.Context, priceUSD float64, now time.Time) error {
	d, err := o.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		d = &market.Data{}
	}
	d.BTCPriceUSD = priceUSD
	d.LastUpdated = now
	return o.repo.Save(ctx, d)
}
