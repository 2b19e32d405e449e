package account

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByPrincipal(ctx context.Context, principal string) (*Profile, error)
	// GetByPrincipalForUpdate locks the row for the rest of the transaction.
	GetByPrincipalForUpdate(ctx context.Context, principal string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
