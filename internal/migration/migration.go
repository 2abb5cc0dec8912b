package migration

import (
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run applies the schema on startup. AutoMigrate keeps the SQLite and
// Postgres deployments in step without a separate migration pipeline.
func Run(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&authdomain.User{},
		&catalogdomain.Product{},
		&catalogdomain.ImportRecord{},
		&quotedomain.Quote{},
	); err != nil {
		return err
	}
	log.Info("schema migrated")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
