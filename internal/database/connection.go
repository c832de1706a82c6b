package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/netsentinel/internal/models"
)

const DefaultRetryInterval = 5 * time.Second

type dialFunc func() (*gorm.DB, error)

// Connect подключается к postgres и повторяет попытку с фиксированным интервалом,
// пока соединение не установлено или ctx не отменён.
func (d *Database) Connect(ctx context.Context, dsn string, retryInterval time.Duration) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	db, err := connectWithRetry(ctx, retryInterval, func() (*gorm.DB, error) {
		return Open(postgres.Open(dsn))
	})
	if err != nil {
		return err
	}

	d.db = db
	return d.Migrate()
}

// Open открывает соединение через переданный диалект и проверяет его пингом
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(&models.User{}, &models.UploadRecord{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func connectWithRetry(ctx context.Context, interval time.Duration, dial dialFunc) (*gorm.DB, error) {
	for attempt := 1; ; attempt++ {
		db, err := dial()
		if err == nil {
			logrus.WithField("attempt", attempt).Info("Database connected")
			return db, nil
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"attempt":  attempt,
			"retry_in": interval.String(),
		}).Warn("Database connection failed, retrying")

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("database connect aborted after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}
	}
}
