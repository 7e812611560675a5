package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the PostgreSQL pool and stores it in DB.
func Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("empty database dsn")
	}

	logLevel := logger.Warn
	if IsDebug() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql.DB")
	}
	sqlDB.SetMaxOpenConns(Conf.GetInt("DB_MAX_OPEN_CONNS"))
	sqlDB.SetMaxIdleConns(Conf.GetInt("DB_MAX_IDLE_CONNS"))
	sqlDB.SetConnMaxLifetime(Conf.GetDuration("DB_CONN_MAX_LIFETIME"))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return errors.Wrap(err, "pinging database")
	}

	DB = db
	WithContext(ctx).Info("Connected to database")
	return nil
}
