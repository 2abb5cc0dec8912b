package db

import (
	"github.com/radixtech/quotehub/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialect, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Info("database opened", zap.String("dialect", gdb.Dialector.Name()))
	return gdb, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
