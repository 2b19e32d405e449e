package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// ListByBorrower returns the borrower's loans in insertion order.
	ListByBorrower(ctx context.Context, principal string) ([]Loan, error)
	ListActiveIDs(ctx context.Context) ([]uint64, error)
	Save(ctx context.Context, l *Loan) error
}
