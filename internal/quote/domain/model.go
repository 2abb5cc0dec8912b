package domain

import (
	"time"

	"github.com/radixtech/quotehub/internal/money"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "Draft"
	StatusConfirmed = "Confirmed"
)

// Quote is a saved quotation keyed by its semantic id
// (QUO<yyyymmdd><initials><seq>). The payload is the client's draft stored
// whole; listings project from the denormalized columns.
type Quote struct {
	ID           string    `gorm:"primaryKey;type:text"`
	OwnerUserID  *int64    `gorm:"column:user_id;index"`
	CustomerName string    `gorm:"type:text"`
	ProjectName  string    `gorm:"type:text"`
	Payload      []byte    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Status       string    `gorm:"type:text;not null;default:'Draft'"`
}

func (Quote) TableName() string { return "quotes" }

// Payload is the typed form of the stored quote body. Legacy rows may not
// parse; consumers that iterate all quotes skip those.
type Payload struct {
	ID               string           `json:"id,omitempty"`
	CustomerName     string           `json:"customerName"`
	ProjectName      string           `json:"projectName"`
	Items            []money.LineItem `json:"items"`
	InstallationCost decimal.Decimal  `json:"installationCost"`
	DiscountPercent  decimal.Decimal  `json:"discountPercent"`
}

// Summary is the listing projection. OwnerName is only populated for admin
// listings; quotes without a resolvable owner show "System/Legacy".
type Summary struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProjectName  string    `json:"project_name"`
	CreatedAt    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	OwnerName    string    `json:"user_name,omitempty"`
}
