package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists products. The db handle is passed per call so services
// can run several operations inside one transaction.
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, p *Product) error
	FindByModel(ctx context.Context, db *gorm.DB, model string) (*Product, error)
	// FindByModelForUpdate locks the product row for the duration of the
	// surrounding transaction on backends that support row locks.
	FindByModelForUpdate(ctx context.Context, db *gorm.DB, model string) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, p *Product) error
	Delete(ctx context.Context, db *gorm.DB, model string) error
	DeleteAll(ctx context.Context, db *gorm.DB) error
	SetImage(ctx context.Context, db *gorm.DB, model, filename string) error
	SetStock(ctx context.Context, db *gorm.DB, model string, stock int) error
	AdjustStock(ctx context.Context, db *gorm.DB, model string, delta int) error
	RecordImport(ctx context.Context, db *gorm.DB, rec *ImportRecord) error
}
