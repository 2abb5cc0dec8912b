package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"

	DefaultCategory = "Uncategorized"
)

// Product is a catalog entry. Model is the natural key; quotes reference it
// by value, so deleting a product never cascades.
type Product struct {
	ID            int64           `json:"-" gorm:"primaryKey;autoIncrement"`
	Model         string          `json:"model" gorm:"type:text;not null;uniqueIndex"`
	Description   string          `json:"description" gorm:"type:text"`
	Category      string          `json:"category" gorm:"type:text;not null;default:'Uncategorized'"`
	Price         decimal.Decimal `json:"-" gorm:"type:decimal(12,2);not null"`
	Stock         int             `json:"stock" gorm:"not null;default:0"`
	ImageFilename *string         `json:"-" gorm:"type:text"`
	Status        string          `json:"status" gorm:"type:text;not null;default:'Active'"`
	CreatedAt     time.Time       `json:"-" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `json:"-" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

// ImportRecord is the audit row written for every accepted price sheet.
type ImportRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Filename   string    `gorm:"type:text;not null"`
	ImportedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ImportRecord) TableName() string { return "imports" }
