package dashboard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/radixtech/quotehub/internal/money"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const topProductCount = 5

type InventoryItem struct {
	Model       string `json:"model"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	Status      string `json:"status"`
}

type TopProduct struct {
	Model       string `json:"model"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type MonthlyStats struct {
	TotalValue string `json:"total_value"`
	QuoteCount int    `json:"quote_count"`
}

type Stats struct {
	Inventory   []InventoryItem `json:"inventory"`
	TopProducts []TopProduct    `json:"top_products"`
	Monthly     MonthlyStats    `json:"monthly_stats"`
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	QuoteRepo   quotedomain.Repository
	CatalogRepo catalogdomain.Repository
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	quoteRepo   quotedomain.Repository
	catalogRepo catalogdomain.Repository
	now         func() time.Time
}

func New(p Params) Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		quoteRepo:   p.QuoteRepo,
		catalogRepo: p.CatalogRepo,
		now:         time.Now,
	}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	products, err := s.catalogRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quoteRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(products))
	for _, p := range products {
		descriptions[p.Model] = p.Description
	}

	tallies := make(map[string]int)
	monthlyTotal := decimal.Zero
	quoteCount := 0
	currentYear, currentMonth, _ := s.now().Date()

	for _, q := range quotes {
		var payload quotedomain.Payload
		if err := json.Unmarshal(q.Payload, &payload); err != nil {
			// Historic rows may hold blobs this build cannot parse.
			s.log.Debug("skipping malformed quote payload", zap.String("id", q.ID))
			continue
		}

		for _, item := range payload.Items {
			tallies[item.Model] += item.Quantity
		}

		year, month, _ := q.CreatedAt.Date()
		if year == currentYear && month == currentMonth {
			totals, err := money.PriceQuote(payload.Items, payload.InstallationCost, payload.DiscountPercent)
			if err != nil {
				s.log.Debug("skipping unpriceable quote", zap.String("id", q.ID))
				continue
			}
			monthlyTotal = monthlyTotal.Add(totals.GrandTotal)
			quoteCount++
		}
	}

	// Inventory ordered by what is closest to running out.
	inventory := make([]InventoryItem, 0, len(products))
	for _, p := range products {
		inventory = append(inventory, InventoryItem{
			Model:       p.Model,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price.StringFixed(2),
			Stock:       p.Stock,
			Status:      p.Status,
		})
	}
	sort.SliceStable(inventory, func(i, j int) bool {
		return inventory[i].Stock < inventory[j].Stock
	})

	top := make([]TopProduct, 0, len(tallies))
	for model, qty := range tallies {
		description, ok := descriptions[model]
		if !ok {
			description = "N/A"
		}
		top = append(top, TopProduct{Model: model, Description: description, Quantity: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Model < top[j].Model
	})
	if len(top) > topProductCount {
		top = top[:topProductCount]
	}

	return &Stats{
		Inventory:   inventory,
		TopProducts: top,
		Monthly: MonthlyStats{
			TotalValue: monthlyTotal.StringFixed(2),
			QuoteCount: quoteCount,
		},
	}, nil
}
