package repository

import (
	"context"
	"errors"

	"github.com/radixtech/quotehub/internal/quote/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, q *domain.Quote) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "customer_name", "project_name", "payload",
			}),
		}).
		Create(q).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Quote, error) {
	return r.findByID(ctx, db, id)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id string) (*domain.Quote, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findByID(ctx, db, id)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id string) (*domain.Quote, error) {
	var q domain.Quote
	err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repo) MaxIDWithPrefix(ctx context.Context, db *gorm.DB, prefix string) (string, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id LIKE ?", prefix+"%").
		Order("id DESC").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (r *repo) ListByOwner(ctx context.Context, db *gorm.DB, ownerID int64) ([]domain.Summary, error) {
	var out []domain.Summary
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_name, project_name, created_at, status
		 FROM quotes WHERE user_id = ? ORDER BY created_at DESC`,
		ownerID,
	).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.Summary, error) {
	var out []domain.Summary
	err := db.WithContext(ctx).Raw(
		`SELECT q.id, q.customer_name, q.project_name, q.created_at, q.status,
		        COALESCE(u.name, 'System/Legacy') AS owner_name
		 FROM quotes q
		 LEFT JOIN users u ON q.user_id = u.id
		 ORDER BY q.created_at DESC`,
	).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Quote, error) {
	var out []domain.Quote
	if err := db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) SetStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE quotes SET status = ? WHERE id = ?`, status, id,
	).Error
}
