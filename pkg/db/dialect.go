package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/radixtech/quotehub/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialect picks the gorm driver from DATABASE_URL. An empty URL falls back
// to the embedded SQLite file database.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	url := cfg.DatabaseURL
	switch {
	case url == "":
		return sqlite.Open(cfg.SQLitePath), nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(strings.TrimPrefix(url, "mysql://")), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q", url)
	}
}
