package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bbl-backend/internal/domain/account"
	"bbl-backend/internal/domain/loan"
	"bbl-backend/internal/domain/market"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(mysql.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates the ledger schema and seeds the singleton market row with
// a zero price so the oracle has something to load before the first feed
// update.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&loan.Loan{}, &account.Profile{}, &market.Data{}); err != nil {
		return err
	}
	var n int64
	if err := db.Model(&market.Data{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		if err := db.Create(&market.Data{BTCPriceUSD: 0, LastUpdated: time.Now().UTC()}).Error; err != nil {
			return err
		}
	}
	return nil
}
