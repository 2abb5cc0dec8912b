package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service interface {
	// ListGrouped returns products grouped by category, each ordered by
	// category then description.
	ListGrouped(ctx context.Context) (map[string][]View, error)
	Get(ctx context.Context, model string) (*Product, error)
	Create(ctx context.Context, req UpsertRequest) (*Product, error)
	Update(ctx context.Context, model string, req UpsertRequest) (*Product, error)
	Delete(ctx context.Context, model string) error
	Clear(ctx context.Context) error
	SetImage(ctx context.Context, model, filename string) error
	SetStock(ctx context.Context, model string, stock int) error
}

// UpsertRequest carries product fields for admin create/update. Price arrives
// as a string or number and is parsed exactly, never through a float.
type UpsertRequest struct {
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
}

// View is the listing projection served to clients.
type View struct {
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
	Status      string  `json:"status"`
}

var (
	ErrNotFound      = errors.New("product_not_found")
	ErrModelExists   = errors.New("model_exists")
	ErrInvalidModel  = errors.New("invalid_model")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrInvalidStock  = errors.New("invalid_stock")
	ErrInvalidStatus = errors.New("invalid_status")
)
