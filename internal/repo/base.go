package repo

import (
	"context"

	"gorm.io/gorm"
)

// batchSize caps rows per INSERT so large catalog syncs stay under driver
// parameter limits.
const batchSize = 100

// Base holds the GORM handle shared by the storefront repositories.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// InTx runs fn inside one transaction; any error rolls the whole unit back.
func (b Base) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return b.DB(ctx).Transaction(fn)
}

// BatchSize reports the insert batch size used by CreateInBatches callers.
func (b Base) BatchSize() int {
	return batchSize
}
