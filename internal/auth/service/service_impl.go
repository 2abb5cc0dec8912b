package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/radixtech/quotehub/internal/auth/domain"
	"github.com/radixtech/quotehub/internal/auth/password"
	"github.com/radixtech/quotehub/internal/auth/token"
	"github.com/radixtech/quotehub/internal/config"
	"github.com/radixtech/quotehub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Node   *snowflake.Node
	Repo   domain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	secret string
	node   *snowflake.Node
	repo   domain.Repository
	now    func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("auth.service"),
		secret: p.Config.JWTSecret,
		node:   p.Node,
		repo:   p.Repo,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           s.node.Generate().Int64(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsApproved:   false,
	}
	if err := s.repo.Create(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("email", email))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, s.db, normalizeEmail(req.Email))
	if err != nil {
		return "", nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsApproved {
		return "", nil, domain.ErrPendingApproval
	}

	signed, err := token.Build(s.secret, user.ID, user.Role, s.now())
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (s *Service) Authenticate(ctx context.Context, raw string) (*domain.User, error) {
	claims, err := token.Parse(s.secret, raw)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, s.db, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	if !user.IsApproved {
		return nil, domain.ErrPendingApproval
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, domain.ErrMissingFields
	}
	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, domain.ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// Accounts created by an admin are approved immediately.
	user := &domain.User{
		ID:           s.node.Generate().Int64(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsApproved:   true,
	}
	if err := s.repo.Create(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, actorID, id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" {
		user.Email = email
	}
	if req.Password != "" {
		hash, err := password.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Role != "" && req.Role != user.Role {
		if id == actorID {
			return nil, domain.ErrSelfDemote
		}
		if req.Role != domain.RoleAdmin && req.Role != domain.RoleUser {
			return nil, domain.ErrInvalidRole
		}
		user.Role = req.Role
	}

	if err := s.repo.Update(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, actorID, id int64) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ApproveUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsApproved {
		user.IsApproved = true
		if err := s.repo.Update(ctx, s.db, user); err != nil {
			return nil, err
		}
		s.log.Info("user approved", zap.Int64("id", id))
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
