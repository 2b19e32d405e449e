package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	accountDomain "bbl-backend/internal/domain/account"
	loanDomain "bbl-backend/internal/domain/loan"
	"bbl-backend/internal/domain/uow"
	"bbl-backend/internal/oracle"
	"bbl-backend/internal/testutil/accountmock"
	"bbl-backend/internal/testutil/loanmock"
	"bbl-backend/internal/testutil/uowmock"
	accountUC "bbl-backend/internal/usecase/account"
	loanUC "bbl-backend/internal/usecase/loan"
)

const testPrincipal = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	return e
}

// handlerFixture backs the handlers with an in-memory ledger: one borrower
// profile and a loan map with auto-increment ids.
type handlerFixture struct {
	e       *echo.Echo
	loans   map[uint64]*loanDomain.Loan
	nextID  uint64
	profile *accountDomain.Profile
	oracle  *oracle.Oracle

	loanH    *LoanHandler
	accountH *AccountHandler
}

func newHandlerFixture(t *testing.T, price float64) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		e:     newEchoWithValidator(),
		loans: map[uint64]*loanDomain.Loan{},
		profile: &accountDomain.Profile{
			Principal:   testPrincipal,
			ActiveLoans: []uint64{},
			CreditScore: accountDomain.InitialCreditScore,
		},
	}

	loanRepo := &loanmock.Repo{
		CreateFn: func(ctx context.Context, l *loanDomain.Loan) error {
			f.nextID++
			l.ID = f.nextID
			f.loans[l.ID] = l
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
			if l, ok := f.loans[id]; ok {
				return l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
			if l, ok := f.loans[id]; ok {
				return l, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		ListByBorrowerFn: func(ctx context.Context, principal string) ([]loanDomain.Loan, error) {
			out := []loanDomain.Loan{}
			for id := uint64(1); id <= f.nextID; id++ {
				if l, ok := f.loans[id]; ok && l.Borrower == principal {
					out = append(out, *l)
				}
			}
			return out, nil
		},
	}
	accountRepo := &accountmock.Repo{
		GetByPrincipalFn: func(ctx context.Context, p string) (*accountDomain.Profile, error) {
			if f.profile != nil && p == f.profile.Principal {
				return f.profile, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByPrincipalForUpdateFn: func(ctx context.Context, p string) (*accountDomain.Profile, error) {
			if f.profile != nil && p == f.profile.Principal {
				return f.profile, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, p *accountDomain.Profile) error {
			f.profile = p
			return nil
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
	f.loanH = NewLoanHandler(loanUC.NewUsecase(loanRepo, uowmock.Passthrough(repos), f.oracle, scores))
	f.accountH = NewAccountHandler(accountUC.NewUsecase(accountRepo))
	return f
}

// invoke builds an echo context for a handler call and returns the recorder.
func (f *handlerFixture) invoke(t *testing.T, method, target, body string, hdr map[string]string, setup func(echo.Context), h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func principalHeader() map[string]string {
	return map[string]string{PrincipalHeader: testPrincipal}
}
