package catalog

import (
	"github.com/radixtech/quotehub/internal/catalog/imagelink"
	"github.com/radixtech/quotehub/internal/catalog/importer"
	"github.com/radixtech/quotehub/internal/catalog/repository"
	"github.com/radixtech/quotehub/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(importer.New),
	fx.Provide(imagelink.New),
)
