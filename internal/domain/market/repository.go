package market

import "context"

type Repository interface {
	// Get returns the singleton row, or gorm's not-found error before the
	// first Save.
	Get(ctx context.Context) (*Data, error)
	Save(ctx context.Context, d *Data) error
}
