package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	accountDomain "bbl-backend/internal/domain/account"
	domain "bbl-backend/internal/domain/loan"
	"bbl-backend/internal/domain/market"
	"bbl-backend/internal/domain/uow"
	"bbl-backend/internal/oracle"
	"bbl-backend/internal/risk"
	"bbl-backend/internal/testutil/accountmock"
	"bbl-backend/internal/testutil/loanmock"
	"bbl-backend/internal/testutil/uowmock"
)

const borrower = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

// fixture wires the usecase to an in-memory ledger: loans in a map with
// auto-increment ids, one borrower profile, a memory-only oracle.
type fixture struct {
	loans    map[uint64]*domain.Loan
	nextID   uint64
	profile  *accountDomain.Profile
	oracle   *oracle.Oracle
	creates  int
	uc       *Usecase
}

func newFixture(t *testing.T, price float64) *fixture {
	t.Helper()
	f := &fixture{
		loans: map[uint64]*domain.Loan{},
		profile: &accountDomain.Profile{
			Principal:   borrower,
			ActiveLoans: []uint64{},
			CreditScore: accountDomain.InitialCreditScore,
		},
	}

	loanRepo := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			f.creates++
			f.nextID++
			l.ID = f.nextID
			f.loans[l.ID] = l
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			if l, ok := f.loans[id]; ok {
				return l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			if l, ok := f.loans[id]; ok {
				return l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	accountRepo := &accountmock.Repo{
		GetByPrincipalForUpdateFn: func(ctx context.Context, p string) (*accountDomain.Profile, error) {
			if p == f.profile.Principal {
				return f.profile, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		SaveFn: func(ctx context.Context, p *accountDomain.Profile) error {
			f.profile = p
			return nil
		},
	}

	f.oracle = oracle.New(nil)
	if price > 0 {
		if err := f.oracle.Update(context.Background(), price); err != nil {
			t.Fatalf("seed price: %v", err)
		}
	}

	repos := uow.Repos{Loans: loanRepo, Accounts: accountRepo}
	scores := accountDomain.DeltaScorePolicy{RepayReward: 10, ClosePenalty: 50}
	f.uc = NewUsecase(loanRepo, uowmock.Passthrough(repos), f.oracle, scores)
	return f
}

func request(sats, cents uint64, days uint32) RequestInput {
	return RequestInput{Borrower: borrower, CollateralSats: sats, RequestedCents: cents, DurationDays: days}
}

func TestRequest_Accepted60Percent(t *testing.T) {
	f := newFixture(t, 50_000)

	// 1 BTC, $30,000 → LTV 60%
	dto, err := f.uc.Request(context.Background(), request(100_000_000, 3_000_000, 30))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if dto.Status != string(domain.StatusActive) {
		t.Fatalf("status = %s, want active", dto.Status)
	}
	if dto.LTVRatio > risk.MaxLTV {
		t.Fatalf("snapshot ltv = %f exceeds cap", dto.LTVRatio)
	}
	if dto.InterestRate != risk.DefaultInterestRate {
		t.Fatalf("rate = %f, want %f", dto.InterestRate, risk.DefaultInterestRate)
	}
	if want := dto.CreatedAt.Add(30 * 24 * time.Hour); !dto.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want %v", dto.DueDate, want)
	}
	if got := f.profile.TotalCollateralSats; got != 100_000_000 {
		t.Fatalf("profile collateral = %d", got)
	}
	if len(f.profile.ActiveLoans) != 1 || f.profile.ActiveLoans[0] != dto.ID {
		t.Fatalf("active loans = %v", f.profile.ActiveLoans)
	}
}

func TestRequest_Rejected80Percent(t *testing.T) {
	f := newFixture(t, 50_000)

	// 1 BTC, $40,000 → LTV 80%
	_, err := f.uc.Request(context.Background(), request(100_000_000, 4_000_000, 30))
	if !errors.Is(err, domain.ErrLTVExceeded) {
		t.Fatalf("err = %v, want ErrLTVExceeded", err)
	}
	if f.creates != 0 {
		t.Fatal("rejected request must not reach the ledger")
	}
	if len(f.profile.ActiveLoans) != 0 || f.profile.TotalCollateralSats != 0 {
		t.Fatalf("rejection mutated profile: %+v", f.profile)
	}
}

func TestRequest_RejectionsConsumeNoID(t *testing.T) {
	f := newFixture(t, 50_000)

	if _, err := f.uc.Request(context.Background(), request(100_000_000, 4_000_000, 30)); err == nil {
		t.Fatal("want rejection")
	}
	dto, err := f.uc.Request(context.Background(), request(100_000_000, 3_000_000, 30))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if dto.ID != 1 {
		t.Fatalf("first admitted loan got id %d, want 1", dto.ID)
	}
}

func TestRequest_InvalidAmounts(t *testing.T) {
	f := newFixture(t, 50_000)
	for _, in := range []RequestInput{
		request(0, 3_000_000, 30),
		request(100_000_000, 0, 30),
	} {
		if _, err := f.uc.Request(context.Background(), in); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("err = %v, want ErrInvalidAmount", err)
		}
	}
}

func TestRequest_PriceUnavailable(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.uc.Request(context.Background(), request(100_000_000, 3_000_000, 30))
	if !errors.Is(err, market.ErrPriceUnavailable) {
		t.Fatalf("err = %v, want ErrPriceUnavailable", err)
	}
}

func TestRequest_ProfileNotFound(t *testing.T) {
	f := newFixture(t, 50_000)
	in := request(100_000_000, 3_000_000, 30)
	in.Borrower = "cccccccccccccccccccccccccccccccc"
	if _, err := f.uc.Request(context.Background(), in); !errors.Is(err, accountDomain.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestRepay_SettlesWithAccruedInterest(t *testing.T) {
	f := newFixture(t, 50_000)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return t0 }

	// $1,000 principal at 8% APR
	dto, err := f.uc.Request(context.Background(), request(100_000_000, 100_000, 400))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	f.uc.now = func() time.Time { return t0.Add(365 * 24 * time.Hour) }
	set, err := f.uc.Repay(context.Background(), dto.ID, borrower)
	if err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if set.TotalCents != 108_000 {
		t.Fatalf("settlement = %d cents, want 108000", set.TotalCents)
	}
	if set.InterestCents != 8_000 {
		t.Fatalf("interest = %d cents, want 8000", set.InterestCents)
	}

	l := f.loans[dto.ID]
	if l.Status != domain.StatusRepaid {
		t.Fatalf("status = %s, want repaid", l.Status)
	}
	if l.SettledCents != 108_000 || l.SettledAt == nil {
		t.Fatalf("settlement not frozen on record: %+v", l)
	}
	if len(f.profile.ActiveLoans) != 0 || f.profile.TotalCollateralSats != 0 {
		t.Fatalf("collateral not released: %+v", f.profile)
	}
	if f.profile.CreditScore != accountDomain.InitialCreditScore+10 {
		t.Fatalf("credit score = %d", f.profile.CreditScore)
	}
}

func TestRepay_NotFound(t *testing.T) {
	f := newFixture(t, 50_000)
	if _, err := f.uc.Repay(context.Background(), 99, borrower); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepay_Unauthorized(t *testing.T) {
	f := newFixture(t, 50_000)
	dto, err := f.uc.Request(context.Background(), request(100_000_000, 3_000_000, 30))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if _, err := f.uc.Repay(context.Background(), dto.ID, "dddddddddddddddddddddddddddddddd"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if f.loans[dto.ID].Status != domain.StatusActive {
		t.Fatal("unauthorized repay changed loan state")
	}
}

func TestRepay_AlreadyClosed(t *testing.T) {
	f := newFixture(t, 50_000)
	dto, err := f.uc.Request(context.Background(), request(100_000_000, 3_000_000, 30))
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	first, err := f.uc.Repay(context.Background(), dto.ID, borrower)
	if err != nil {
		t.Fatalf("first Repay: %v", err)
	}
	if _, err := f.uc.Repay(context.Background(), dto.ID, borrower); !errors.Is(err, domain.ErrAlreadyClosed) {
		t.Fatalf("err = %v, want ErrAlreadyClosed", err)
	}
	if f.loans[dto.ID].SettledCents != first.TotalCents {
		t.Fatal("second repay changed the frozen settlement")
	}
}

func TestMaxLoan_UsesCurrentPrice(t *testing.T) {
	f := newFixture(t, 50_000)
	if got := f.uc.MaxLoan(100_000_000); got != 3_500_000 {
		t.Fatalf("MaxLoan = %d, want 3500000", got)
	}
	if err := f.oracle.Update(context.Background(), 100_000); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.uc.MaxLoan(100_000_000); got != 7_000_000 {
		t.Fatalf("MaxLoan after price move = %d, want 7000000", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t, 50_000)
	if _, err := f.uc.Get(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
