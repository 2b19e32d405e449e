package market

import (
	"errors"
	"time"
)

var (
	ErrInvalidPrice     = errors.New("price must be greater than 0")
	ErrPriceUnavailable = errors.New("no market price available")
)

// Data is the process-wide market snapshot, persisted as a single row.
type Data struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	BTCPriceUSD float64   `gorm:"column:btc_price_usd" json:"btc_price_usd"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (Data) TableName() string { return "market_data" }
