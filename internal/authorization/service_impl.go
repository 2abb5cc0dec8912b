package authorization

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:embed model.conf
var modelText string

const (
	ObjectCatalog   = "catalog"
	ObjectQuote     = "quote"
	ObjectUser      = "user"
	ObjectDashboard = "dashboard"
)

const (
	ActionCatalogView   = "catalog.view"
	ActionCatalogManage = "catalog.manage"
	ActionCatalogImport = "catalog.import"

	ActionQuoteCreate  = "quote.create"
	ActionQuoteView    = "quote.view"
	ActionQuoteViewAll = "quote.view_all"
	ActionQuoteConfirm = "quote.confirm"

	ActionUserManage = "user.manage"

	ActionDashboardView = "dashboard.view"
)

var (
	ErrForbidden   = errors.New("insufficient permissions")
	ErrInvalidRole = errors.New("unknown role")
)

// Service answers whether a role may perform an action on an object.
type Service interface {
	Authorize(role string, object string, action string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds an in-memory enforcer seeded with the static role
// policies. Roles never change at runtime so no persistent adapter is
// attached.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(role string, object string, action string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return ErrInvalidRole
	}

	subject := fmt.Sprintf("role:%s", strings.ToLower(role))
	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Every signed-in account
		{"role:user", ObjectCatalog, ActionCatalogView},
		{"role:user", ObjectQuote, ActionQuoteCreate},
		{"role:user", ObjectQuote, ActionQuoteView},

		// Admin-only surfaces
		{"role:admin", ObjectCatalog, ActionCatalogManage},
		{"role:admin", ObjectCatalog, ActionCatalogImport},
		{"role:admin", ObjectQuote, ActionQuoteViewAll},
		{"role:admin", ObjectQuote, ActionQuoteConfirm},
		{"role:admin", ObjectUser, ActionUserManage},
		{"role:admin", ObjectDashboard, ActionDashboardView},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}

	// Admins inherit every user permission.
	if _, err := enforcer.AddGroupingPolicy("role:admin", "role:user"); err != nil {
		return err
	}
	return nil
}
