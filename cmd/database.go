package cmd

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/edumaster/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const driverName = "pgx"

// initDB opens the shared pool. Reports query it through sqlx, every other
// repository through the gorm handle built on the same *sql.DB.
func initDB(cfg internal.DatabaseConfig, logLevel string) (*sqlx.DB, *gorm.DB, error) {
	db, err := sqlx.Connect(driverName, cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gdb, err := internal.OpenGorm(db.DB, gormLogLevel(logLevel))
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, gdb, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
