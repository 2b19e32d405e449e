package accountmock

import (
	"context"

	"gorm.io/gorm"

	domain "bbl-backend/internal/domain/account"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies account.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Profile) error
	GetByPrincipalFn          func(ctx context.Context, principal string) (*domain.Profile, error)
	GetByPrincipalForUpdateFn func(ctx context.Context, principal string) (*domain.Profile, error)
	SaveFn                    func(ctx context.Context, p *domain.Profile) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPrincipal(ctx context.Context, principal string) (*domain.Profile, error) {
	if m.GetByPrincipalFn != nil {
		return m.GetByPrincipalFn(ctx, principal)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByPrincipalForUpdate(ctx context.Context, principal string) (*domain.Profile, error) {
	if m.GetByPrincipalForUpdateFn != nil {
		return m.GetByPrincipalForUpdateFn(ctx, principal)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, p *domain.Profile) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
