// Package liquidation evaluates active loans against the current market
// price. A loan whose live LTV climbs past the liquidation threshold is
// force-closed; an overdue loan that survives the price check is marked
// defaulted. Liquidation is checked first when both conditions hold.
package liquidation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bbl-backend/internal/domain/account"
	domain "bbl-backend/internal/domain/loan"
	"bbl-backend/internal/domain/uow"
	"bbl-backend/internal/oracle"
	"bbl-backend/internal/risk"
)

type Usecase struct {
	repo      domain.Repository
	uow       uow.UnitOfWork
	oracle    *oracle.Oracle
	scores    account.ScorePolicy
	threshold float64
	now       func() time.Time
}

func NewUsecase(repo domain.Repository, u uow.UnitOfWork, o *oracle.Oracle, scores account.ScorePolicy, threshold float64) *Usecase {
	if threshold <= 0 {
		threshold = risk.DefaultLiquidationThreshold
	}
	return &Usecase{
		repo:      repo,
		uow:       u,
		oracle:    o,
		scores:    scores,
		threshold: threshold,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type Report struct {
	Checked    int `json:"checked"`
	Liquidated int `json:"liquidated"`
	Defaulted  int `json:"defaulted"`
	Skipped    int `json:"skipped"`
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeLiquidated
	outcomeDefaulted
)

// EvaluateAll sweeps every active loan. Each loan is re-read and locked in
// its own transaction, so the sweep can run alongside user-initiated
// operations on other loans. With no price on hand the sweep is a no-op:
// risk cannot be assessed, and time-based defaults wait for the next pass
// rather than act on a blind market.
func (u *Usecase) EvaluateAll(ctx context.Context) (Report, error) {
	var rep Report
	if u.oracle.Price() <= 0 {
		return rep, nil
	}

	ids, err := u.repo.ListActiveIDs(ctx)
	if err != nil {
		return rep, err
	}
	for _, id := range ids {
		out, err := u.evaluateOne(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return rep, fmt.Errorf("evaluate loan %d: %w", id, err)
		}
		rep.Checked++
		switch out {
		case outcomeLiquidated:
			rep.Liquidated++
		case outcomeDefaulted:
			rep.Defaulted++
		default:
			rep.Skipped++
		}
	}
	return rep, nil
}

func (u *Usecase) evaluateOne(ctx context.Context, id uint64) (outcome, error) {
	var out outcome
	err := u.uow.WithinLoanTx(ctx, id, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusActive {
			// closed by the borrower between listing and locking
			return nil
		}

		now := u.now()
		price := u.oracle.Price()
		liveLTV, ltvErr := risk.LTV(l.CollateralSats, l.PrincipalCents, price)
		switch {
		case ltvErr != nil || liveLTV > u.threshold:
			out = outcomeLiquidated
			return u.close(ctx, r, l, domain.StatusLiquidated, now)
		case now.After(l.DueDate):
			out = outcomeDefaulted
			return u.close(ctx, r, l, domain.StatusDefaulted, now)
		}
		return nil
	})
	return out, err
}

func (u *Usecase) close(ctx context.Context, r uow.Repos, l *domain.Loan, status domain.Status, now time.Time) error {
	l.Status = status
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
		if status == domain.StatusLiquidated {
			p.CreditScore = u.scores.OnLiquidated(p.CreditScore)
		} else {
			p.CreditScore = u.scores.OnDefaulted(p.CreditScore)
		}
	}
	return r.Accounts.Save(ctx, p)
}
