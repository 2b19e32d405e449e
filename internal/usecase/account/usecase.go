package account

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "bbl-backend/internal/domain/account"
)

type Usecase struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUsecase(repo domain.Repository) *Usecase {
	return &Usecase{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Ensure returns the caller's profile, creating it on first use. Calling it
// again is a no-op on state: the stored profile wins, including its
// created_at and counters.
func (u *Usecase) Ensure(ctx context.Context, principal string) (*domain.Profile, error) {
	p, err := u.repo.GetByPrincipal(ctx, principal)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = &domain.Profile{
		Principal:   principal,
		ActiveLoans: []uint64{},
		CreditScore: domain.InitialCreditScore,
		CreatedAt:   u.now(),
	}
	if err := u.repo.Create(ctx, p); err != nil {
		// lost a race with a concurrent Ensure; the unique index kept one
		if existing, getErr := u.repo.GetByPrincipal(ctx, principal); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Get(ctx context.Context, principal string) (*domain.Profile, error) {
	p, err := u.repo.GetByPrincipal(ctx, principal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}
