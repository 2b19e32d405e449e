package account

import (
	"errors"
	"time"
)

// InitialCreditScore is assigned when a profile is first created.
const InitialCreditScore = 750

var ErrProfileNotFound = errors.New("user profile not found")

type Profile struct {
	ID                  uint64 `gorm:"primaryKey;column:id" json:"-"`
	Principal           string `gorm:"size:32;uniqueIndex:ux_profiles_principal" json:"principal"`
	TotalCollateralSats uint64 `gorm:"column:total_collateral_sats" json:"total_collateral_sats"`
	// ActiveLoans holds the ids of this user's non-terminal loans. Loan data
	// itself lives in the loans table; these are back-references only.
	ActiveLoans []uint64  `gorm:"column:active_loans;serializer:json;type:text" json:"active_loans"`
	CreditScore int       `gorm:"column:credit_score" json:"credit_score"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Profile) TableName() string { return "user_profiles" }

func (p *Profile) AddLoan(id uint64, collateralSats uint64) {
	p.ActiveLoans = append(p.ActiveLoans, id)
	p.TotalCollateralSats += collateralSats
}

// RemoveLoan drops the back-reference and releases the loan's collateral from
// the running total.
func (p *Profile) RemoveLoan(id uint64, collateralSats uint64) {
	found := false
	kept := p.ActiveLoans[:0]
	for _, v := range p.ActiveLoans {
		if v == id {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	p.ActiveLoans = kept
	if !found {
		return
	}
	if collateralSats > p.TotalCollateralSats {
		p.TotalCollateralSats = 0
		return
	}
	p.TotalCollateralSats -= collateralSats
}
