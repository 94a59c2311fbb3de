// Package setup initializes the infrastructure: database, migrations and the
// optional Redis client.
package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JuanLadeira/task-challenge/internal/domain"
)

// InitDB opens the database from a connection URL. Startup failures are
// retried at a fixed interval up to attempts times before giving up, since
// the database container often comes up after the application does.
func InitDB(databaseURL string, attempts int, interval time.Duration) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL must be set")
	}
	if attempts <= 0 {
		attempts = 1
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			if pingErr := pingDB(db); pingErr == nil {
				if attempt > 1 {
					logrus.Infof("Database reachable after %d attempt(s)", attempt)
				}
				return db, nil
			} else {
				err = pingErr
			}
		}
		if attempt < attempts {
			logrus.WithError(err).Warnf("Database not ready, retrying in %s (%d/%d)", interval, attempt, attempts)
			time.Sleep(interval)
		}
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}

func pingDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return sqlDB.Ping()
}

// MigrateDB creates or updates the users and todos tables.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Todo{}); err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	logrus.Info("Database migration completed")
	return nil
}

// InitRedis connects the Redis client used by the rate limiter.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}
