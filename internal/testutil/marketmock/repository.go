package marketmock

import (
	"context"
	"sync"

	"gorm.io/gorm"

	domain "bbl-backend/internal/domain/market"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is an in-memory market.Repository: a single guarded row, empty until
// the first Save.
type Repo struct {
	mu   sync.Mutex
	row  *domain.Data
	Errs struct {
		Get  error
		Save error
	}
}

func (m *Repo) Get(ctx context.Context) (*domain.Data, error) {
	if m.Errs.Get != nil {
		return nil, m.Errs.Get
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.row
	return &cp, nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Data) error {
	if m.Errs.Save != nil {
		return m.Errs.Save
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.row = &cp
	return nil
}

// Seed installs a row directly, as if persisted by a previous run.
func (m *Repo) Seed(d domain.Data) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.row = &d
}
