package loan

import "time"

type RequestInput struct {
	Borrower       string `json:"-"`
	CollateralSats uint64 `json:"collateral_sats"`
	RequestedCents uint64 `json:"requested_cents"`
	DurationDays   uint32 `json:"duration_days"`
}

type LoanDTO struct {
	ID             uint64     `json:"id"`
	Borrower       string     `json:"borrower"`
	CollateralSats uint64     `json:"collateral_sats"`
	PrincipalCents uint64     `json:"principal_cents"`
	InterestRate   float64    `json:"interest_rate"`
	LTVRatio       float64    `json:"ltv_ratio"`
	Status         string     `json:"status"`
	DueDate        time.Time  `json:"due_date"`
	SettledCents   uint64     `json:"settled_cents,omitempty"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SettlementDTO is the frozen outcome of a repayment.
type SettlementDTO struct {
	LoanID         uint64    `json:"loan_id"`
	PrincipalCents uint64    `json:"principal_cents"`
	InterestCents  uint64    `json:"interest_cents"`
	TotalCents     uint64    `json:"total_cents"`
	SettledAt      time.Time `json:"settled_at"`
}
