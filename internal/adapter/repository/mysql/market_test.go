package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	domain "bbl-backend/internal/domain/market"
)

func TestMarketGet_EmptyStore(t *testing.T) {
	db := openTestDB(t)
	repo := NewMarketRepository(db)

	_, err := repo.Get(context.Background())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMarketSaveAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewMarketRepository(db)
	ctx := context.Background()

	d := &domain.Data{BTCPriceUSD: 45_000, LastUpdated: time.Now().UTC()}
	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BTCPriceUSD != 45_000 {
		t.Fatalf("price = %f", got.BTCPriceUSD)
	}

	// overwrite keeps a single row
	got.BTCPriceUSD = 52_000
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	var n int64
	if err := db.Model(&domain.Data{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("market_data rows = %d, want singleton", n)
	}
	got2, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if got2.BTCPriceUSD != 52_000 {
		t.Fatalf("price after overwrite = %f", got2.BTCPriceUSD)
	}
}
