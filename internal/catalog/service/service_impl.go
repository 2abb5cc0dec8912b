package service

import (
	"context"
	"strings"

	"github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/radixtech/quotehub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListGrouped(ctx context.Context) (map[string][]domain.View, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]domain.View)
	for i := range items {
		p := &items[i]
		cat := p.Category
		if cat == "" {
			cat = domain.DefaultCategory
		}
		var imageURL *string
		if p.ImageFilename != nil && *p.ImageFilename != "" {
			url := "/uploads/" + *p.ImageFilename
			imageURL = &url
		}
		out[cat] = append(out[cat], domain.View{
			Model:       p.Model,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Stock:       p.Stock,
			ImageURL:    imageURL,
			Status:      p.Status,
		})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, model string) (*domain.Product, error) {
	p, err := s.repo.FindByModel(ctx, s.db, strings.TrimSpace(model))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req domain.UpsertRequest) (*domain.Product, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrModelExists
		}
		return nil, err
	}
	s.log.Info("product created", zap.String("model", p.Model))
	return p, nil
}

func (s *Service) Update(ctx context.Context, model string, req domain.UpsertRequest) (*domain.Product, error) {
	existing, err := s.Get(ctx, model)
	if err != nil {
		return nil, err
	}

	req.Model = existing.Model
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ImageFilename = existing.ImageFilename

	if err := s.repo.Update(ctx, s.db, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, model string) error {
	if _, err := s.Get(ctx, model); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, model)
}

func (s *Service) Clear(ctx context.Context) error {
	s.log.Info("catalog cleared")
	return s.repo.DeleteAll(ctx, s.db)
}

func (s *Service) SetImage(ctx context.Context, model, filename string) error {
	if _, err := s.Get(ctx, model); err != nil {
		return err
	}
	return s.repo.SetImage(ctx, s.db, model, filename)
}

func (s *Service) SetStock(ctx context.Context, model string, stock int) error {
	if stock < 0 {
		return domain.ErrInvalidStock
	}
	if _, err := s.Get(ctx, model); err != nil {
		return err
	}
	return s.repo.SetStock(ctx, s.db, model, stock)
}

func productFromRequest(req domain.UpsertRequest) (*domain.Product, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		return nil, domain.ErrInvalidModel
	}

	if req.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	if req.Stock < 0 {
		return nil, domain.ErrInvalidStock
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusActive
	}
	if status != domain.StatusActive && status != domain.StatusInactive {
		return nil, domain.ErrInvalidStatus
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = model
	}

	return &domain.Product{
		Model:       model,
		Description: description,
		Category:    category,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      status,
	}, nil
}
