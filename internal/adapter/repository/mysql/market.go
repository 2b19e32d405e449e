package mysql

import (
	"context"

	"gorm.io/gorm"

	marketDomain "bbl-backend/internal/domain/market"
)

// MarketRepository persists the singleton market_data row.
type MarketRepository struct{ db *gorm.DB }

func NewMarketRepository(db *gorm.DB) *MarketRepository { return &MarketRepository{db: db} }

func (r *MarketRepository) Get(ctx context.Context) (*marketDomain.Data, error) {
	var out marketDomain.Data
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	return &out, res.Error
}

func (r *MarketRepository) Save(ctx context.Context, d *marketDomain.Data) error {
	return r.db.WithContext(ctx).Save(d).Error
}
