package quote

import (
	"github.com/radixtech/quotehub/internal/quote/repository"
	"github.com/radixtech/quotehub/internal/quote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quote.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
