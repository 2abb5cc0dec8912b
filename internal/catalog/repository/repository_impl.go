package repository

import (
	"context"
	"errors"

	"github.com/radixtech/quotehub/internal/catalog/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	return db.WithContext(ctx).Create(p).Error
}

func (r *repo) FindByModel(ctx context.Context, db *gorm.DB, model string) (*domain.Product, error) {
	return r.findByModel(ctx, db, model)
}

func (r *repo) FindByModelForUpdate(ctx context.Context, db *gorm.DB, model string) (*domain.Product, error) {
	// SQLite serializes writers already and rejects FOR UPDATE.
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findByModel(ctx, db, model)
}

func (r *repo) findByModel(ctx context.Context, db *gorm.DB, model string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Where("model = ?", model).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).
		Order("category, description").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET description = ?, category = ?, price = ?, stock = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE model = ?`,
		p.Description,
		p.Category,
		p.Price,
		p.Stock,
		p.Status,
		p.Model,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, model string) error {
	return db.WithContext(ctx).Where("model = ?", model).Delete(&domain.Product{}).Error
}

func (r *repo) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products`).Error
}

func (r *repo) SetImage(ctx context.Context, db *gorm.DB, model, filename string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products SET image_filename = ?, updated_at = CURRENT_TIMESTAMP WHERE model = ?`,
		filename, model,
	).Error
}

func (r *repo) SetStock(ctx context.Context, db *gorm.DB, model string, stock int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE model = ?`,
		stock, model,
	).Error
}

func (r *repo) AdjustStock(ctx context.Context, db *gorm.DB, model string, delta int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE model = ?`,
		delta, model,
	).Error
}

func (r *repo) RecordImport(ctx context.Context, db *gorm.DB, rec *domain.ImportRecord) error {
	return db.WithContext(ctx).Create(rec).Error
}
