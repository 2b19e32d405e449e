package mysql

import (
	"context"

	"gorm.io/gorm"

	accountDomain "bbl-backend/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, p *accountDomain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *AccountRepository) Save(ctx context.Context, p *accountDomain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *AccountRepository) GetByPrincipal(ctx context.Context, principal string) (*accountDomain.Profile, error) {
	var out accountDomain.Profile
	res := r.db.WithContext(ctx).Where("principal = ?", principal).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetByPrincipalForUpdate(ctx context.Context, principal string) (*accountDomain.Profile, error) {
	var out accountDomain.Profile
	res := lockForUpdate(r.db.WithContext(ctx)).Where("principal = ?", principal).First(&out)
	return &out, res.Error
}
