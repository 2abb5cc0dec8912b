package service

import (
	"context"
	"encoding/json"
	"time"

	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/radixtech/quotehub/internal/money"
	"github.com/radixtech/quotehub/internal/quote/domain"
	"github.com/radixtech/quotehub/internal/quote/reference"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	catalogRepo catalogdomain.Repository
	now         func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("quote.service"),
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
		now:         time.Now,
	}
}

func (s *Service) Save(ctx context.Context, principal domain.Principal, payload domain.Payload) (string, error) {
	// Validates quantities, prices, discount and installation; the totals
	// themselves are recomputed on every read.
	if _, err := money.PriceQuote(payload.Items, payload.InstallationCost, payload.DiscountPercent); err != nil {
		return "", err
	}

	quoteID := payload.ID
	ownerID := principal.UserID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if quoteID != "" {
			existing, err := s.repo.FindByID(ctx, tx, quoteID)
			if err != nil {
				return err
			}
			if existing != nil && existing.Status == domain.StatusConfirmed {
				return domain.ErrAlreadyConfirmed
			}
		} else {
			prefix := reference.Prefix(principal.Name, s.now())
			last, err := s.repo.MaxIDWithPrefix(ctx, tx, prefix)
			if err != nil {
				return err
			}
			quoteID, err = reference.Next(prefix, last)
			if err != nil {
				return err
			}
		}

		payload.ID = quoteID
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		return s.repo.Upsert(ctx, tx, &domain.Quote{
			ID:           quoteID,
			OwnerUserID:  &ownerID,
			CustomerName: payload.CustomerName,
			ProjectName:  payload.ProjectName,
			Payload:      raw,
			Status:       domain.StatusDraft,
		})
	})
	if err != nil {
		return "", err
	}

	s.log.Info("quote saved", zap.String("id", quoteID))
	return quoteID, nil
}

func (s *Service) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Payload, error) {
	_, payload, err := s.GetRecord(ctx, principal, id)
	return payload, err
}

func (s *Service) GetRecord(ctx context.Context, principal domain.Principal, id string) (*domain.Quote, *domain.Payload, error) {
	q, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, domain.ErrNotFound
	}

	if !principal.Admin {
		if q.OwnerUserID == nil || *q.OwnerUserID != principal.UserID {
			return nil, nil, domain.ErrForbidden
		}
	}

	var payload domain.Payload
	if err := json.Unmarshal(q.Payload, &payload); err != nil {
		return nil, nil, domain.ErrMalformedPayload
	}
	payload.ID = q.ID
	return q, &payload, nil
}

func (s *Service) ListMine(ctx context.Context, principal domain.Principal) ([]domain.Summary, error) {
	return s.repo.ListByOwner(ctx, s.db, principal.UserID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Summary, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *Service) Confirm(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.Status == domain.StatusConfirmed {
			return domain.ErrAlreadyConfirmed
		}

		var payload domain.Payload
		if err := json.Unmarshal(q.Payload, &payload); err != nil {
			return domain.ErrMalformedPayload
		}
		if len(payload.Items) == 0 {
			return domain.ErrEmptyQuote
		}

		// Repeated line items for one model sum for both the check and
		// the deduction.
		required := make(map[string]int)
		order := make([]string, 0, len(payload.Items))
		for _, item := range payload.Items {
			if _, seen := required[item.Model]; !seen {
				order = append(order, item.Model)
			}
			required[item.Model] += item.Quantity
		}

		for _, model := range order {
			p, err := s.catalogRepo.FindByModelForUpdate(ctx, tx, model)
			if err != nil {
				return err
			}
			available := 0
			if p != nil {
				available = p.Stock
			}
			if p == nil || available < required[model] {
				return &domain.InsufficientStockError{
					Model:     model,
					Required:  required[model],
					Available: available,
				}
			}
		}

		for _, model := range order {
			if err := s.catalogRepo.AdjustStock(ctx, tx, model, -required[model]); err != nil {
				return err
			}
		}

		return s.repo.SetStatus(ctx, tx, id, domain.StatusConfirmed)
	})
	if err != nil {
		return err
	}

	s.log.Info("quote confirmed", zap.String("id", id))
	return nil
}
