package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRepaid     Status = "repaid"
	StatusLiquidated Status = "liquidated"
	StatusDefaulted  Status = "defaulted"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool { return s != StatusActive }

var (
	ErrNotFound      = errors.New("loan not found")
	ErrUnauthorized  = errors.New("caller is not the borrower")
	ErrAlreadyClosed = errors.New("loan is not active")
	ErrInvalidAmount = errors.New("amount must be greater than 0")
	ErrLTVExceeded   = errors.New("ltv ratio too high")
)

type Loan struct {
	// ID is allocated by the database on insert; admission rejections never
	// reach the insert, so rejected requests never consume an id.
	ID             uint64     `gorm:"primaryKey;column:id" json:"id"`
	Borrower       string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower"`
	CollateralSats uint64     `gorm:"column:collateral_sats" json:"collateral_sats"`
	PrincipalCents uint64     `gorm:"column:principal_cents" json:"principal_cents"`
	InterestRate   float64    `gorm:"type:decimal(6,4)" json:"interest_rate"`
	// LTVRatio is the admission-time snapshot. Live risk is always recomputed
	// against the current price, never read from here.
	LTVRatio     float64    `gorm:"column:ltv_ratio;type:decimal(8,6)" json:"ltv_ratio"`
	Status       Status     `gorm:"type:enum('active','repaid','liquidated','defaulted');default:'active'" json:"status"`
	DueDate      time.Time  `gorm:"column:due_date" json:"due_date"`
	SettledCents uint64     `gorm:"column:settled_cents" json:"settled_cents,omitempty"`
	SettledAt    *time.Time `gorm:"column:settled_at" json:"settled_at,omitempty"`
	ClosedAt     *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }
