package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bbl-backend/internal/domain/account"
	domain "bbl-backend/internal/domain/loan"
	"bbl-backend/internal/domain/market"
	"bbl-backend/internal/domain/uow"
	"bbl-backend/internal/oracle"
	"bbl-backend/internal/risk"
)

// Usecase is the loan lifecycle: admission control, repayment, and queries.
// All mutations run through the unit of work so a loan and its owner's
// profile commit together.
type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	oracle *oracle.Oracle
	scores account.ScorePolicy
	now    func() time.Time
}

func NewUsecase(repo domain.Repository, u uow.UnitOfWork, o *oracle.Oracle, scores account.ScorePolicy) *Usecase {
	return &Usecase{
		repo:   repo,
		uow:    u,
		oracle: o,
		scores: scores,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Request admits a new loan or rejects it without consuming a loan id.
// Validation order: amounts, price, LTV; the borrower's profile is checked
// inside the transaction, before anything is written.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*LoanDTO, error) {
	if in.CollateralSats == 0 || in.RequestedCents == 0 {
		return nil, domain.ErrInvalidAmount
	}

	price := u.oracle.Price()
	if price <= 0 {
		return nil, market.ErrPriceUnavailable
	}

	ltv, err := risk.LTV(in.CollateralSats, in.RequestedCents, price)
	if err != nil {
		// worthless collateral is maximal risk
		return nil, fmt.Errorf("%w: %v", domain.ErrLTVExceeded, err)
	}
	if ltv > risk.MaxLTV {
		return nil, fmt.Errorf("%w: %.2f, maximum %.2f", domain.ErrLTVExceeded, ltv, risk.MaxLTV)
	}

	now := u.now()
	l := &domain.Loan{
		Borrower:       in.Borrower,
		CollateralSats: in.CollateralSats,
		PrincipalCents: in.RequestedCents,
		InterestRate:   risk.DefaultInterestRate,
		LTVRatio:       ltv,
		Status:         domain.StatusActive,
		DueDate:        now.Add(time.Duration(in.DurationDays) * 24 * time.Hour),
		CreatedAt:      now,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Accounts.GetByPrincipalForUpdate(ctx, in.Borrower)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return account.ErrProfileNotFound
			}
			return err
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		p.AddLoan(l.ID, l.CollateralSats)
		return r.Accounts.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Repay settles an active loan at principal plus accrued interest, freezing
// the settlement amount on the record.
func (u *Usecase) Repay(ctx context.Context, loanID uint64, caller string) (*SettlementDTO, error) {
	var dto *SettlementDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Borrower != caller {
			return domain.ErrUnauthorized
		}
		if l.Status != domain.StatusActive {
			return domain.ErrAlreadyClosed
		}

		now := u.now()
		total := risk.AccruedTotal(l.PrincipalCents, l.InterestRate, l.CreatedAt, now)
		l.Status = domain.StatusRepaid
		l.SettledCents = total
		l.SettledAt = &now
		l.ClosedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		p, err := r.Accounts.GetByPrincipalForUpdate(ctx, l.Borrower)
		if err != nil {
			return fmt.Errorf("load borrower profile: %w", err)
		}
		p.RemoveLoan(l.ID, l.CollateralSats)
		if u.scores != nil {
			p.CreditScore = u.scores.OnRepaid(p.CreditScore)
		}
		if err := r.Accounts.Save(ctx, p); err != nil {
			return err
		}

		dto = &SettlementDTO{
			LoanID:         l.ID,
			PrincipalCents: l.PrincipalCents,
			InterestCents:  total - l.PrincipalCents,
			TotalCents:     total,
			SettledAt:      now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, principal string) ([]LoanDTO, error) {
	loans, err := u.repo.ListByBorrower(ctx, principal)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}

// MaxLoan returns the largest admissible principal in cents at the current
// price; zero while no price is available.
func (u *Usecase) MaxLoan(collateralSats uint64) uint64 {
	return risk.MaxLoan(collateralSats, u.oracle.Price())
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		ID:             l.ID,
		Borrower:       l.Borrower,
		CollateralSats: l.CollateralSats,
		PrincipalCents: l.PrincipalCents,
		InterestRate:   l.InterestRate,
		LTVRatio:       l.LTVRatio,
		Status:         string(l.Status),
		DueDate:        l.DueDate,
		SettledCents:   l.SettledCents,
		SettledAt:      l.SettledAt,
		CreatedAt:      l.CreatedAt,
	}
}
