package uow

import (
	"context"

	"bbl-backend/internal/domain/account"
	"bbl-backend/internal/domain/loan"
	"bbl-backend/internal/domain/market"
)

type Repos struct {
	Loans    loan.Repository
	Accounts account.Repository
	Market   market.Repository
}

// UnitOfWork runs ledger mutations in a single transaction so that a loan and
// its owner's profile always change together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in.
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
