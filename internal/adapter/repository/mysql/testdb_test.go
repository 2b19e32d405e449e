package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	accountDomain "bbl-backend/internal/domain/account"
	marketDomain "bbl-backend/internal/domain/market"
)

// --- SQLite-friendly loan schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID             uint64     `gorm:"primaryKey;column:id"`
	Borrower       string     `gorm:"size:32;column:borrower"`
	CollateralSats uint64     `gorm:"column:collateral_sats"`
	PrincipalCents uint64     `gorm:"column:principal_cents"`
	InterestRate   float64    `gorm:"column:interest_rate"`
	LTVRatio       float64    `gorm:"column:ltv_ratio"`
	Status         string     `gorm:"type:text;column:status"` // ← no enum
	DueDate        time.Time  `gorm:"column:due_date"`
	SettledCents   uint64     `gorm:"column:settled_cents"`
	SettledAt      *time.Time `gorm:"column:settled_at"`
	ClosedAt       *time.Time `gorm:"column:closed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

// openTestDB creates an in-memory sqlite DB and migrates the sqlite-safe
// loan schema plus the profile and market tables (no enum columns there).
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &accountDomain.Profile{}, &marketDomain.Data{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
