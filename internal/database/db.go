// Package database opens the MySQL database that keeps the review log.
package database

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/recurrence/internal/config"
)

// defaultParams apply unless the config sets the same key.
var defaultParams = map[string]string{
	"time_zone": "'+00:00'",
}

// Open opens a MySQL connection pool using the provided config.
// No connection is made until the first query.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	slog.Default().Debug("opened the review log database",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Database),
	)
	return db, nil
}

// dsn stores times in UTC and allows the multi-statement migration files.
func dsn(cfg config.DatabaseConfig) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.Loc = time.UTC
	mysqlCfg.ParseTime = true
	mysqlCfg.MultiStatements = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}

	params := maps.Clone(defaultParams)
	maps.Copy(params, cfg.Params)
	mysqlCfg.Params = params
	return mysqlCfg.FormatDSN()
}
