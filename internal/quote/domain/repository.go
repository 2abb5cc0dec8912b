package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Upsert inserts the quote or, if the id exists, replaces payload,
	// customer and project name. The original created_at is preserved.
	Upsert(ctx context.Context, db *gorm.DB, q *Quote) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Quote, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id string) (*Quote, error)
	// MaxIDWithPrefix returns the lexically largest quote id starting with
	// prefix, or "" when none exists. Callers run it inside the same
	// transaction as the subsequent insert.
	MaxIDWithPrefix(ctx context.Context, db *gorm.DB, prefix string) (string, error)
	ListByOwner(ctx context.Context, db *gorm.DB, ownerID int64) ([]Summary, error)
	// ListAll joins owner names, substituting "System/Legacy" for quotes
	// without a resolvable owner.
	ListAll(ctx context.Context, db *gorm.DB) ([]Summary, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Quote, error)
	SetStatus(ctx context.Context, db *gorm.DB, id, status string) error
}

type Principal struct {
	UserID int64
	Name   string
	Admin  bool
}

type Service interface {
	// Save persists the payload for the principal. A blank payload id
	// allocates the next semantic id for (principal, today); an existing
	// Draft id is updated in place.
	Save(ctx context.Context, principal Principal, payload Payload) (string, error)
	// Get returns the stored payload. Non-admin principals may only read
	// their own quotes.
	Get(ctx context.Context, principal Principal, id string) (*Payload, error)
	// GetRecord is Get plus row metadata, for consumers that need status.
	GetRecord(ctx context.Context, principal Principal, id string) (*Quote, *Payload, error)
	ListMine(ctx context.Context, principal Principal) ([]Summary, error)
	ListAll(ctx context.Context) ([]Summary, error)
	// Confirm transitions Draft -> Confirmed, deducting stock for every
	// line item inside one transaction. Confirmed is terminal.
	Confirm(ctx context.Context, id string) error
}
