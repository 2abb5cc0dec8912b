package auth

import (
	"github.com/radixtech/quotehub/internal/auth/repository"
	"github.com/radixtech/quotehub/internal/auth/service"
	"github.com/radixtech/quotehub/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
