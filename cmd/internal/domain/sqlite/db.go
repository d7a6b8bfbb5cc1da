package sqlite

import (
	"fmt"
	"time"

	"devjournal/cmd/internal/domain/entity"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	// Path of the database file, ":memory:" for a throwaway database.
	Path string
	// NowFunc overrides the clock used for created_at/updated_at.
	NowFunc func() time.Time
	Logger  logger.Interface
}

func Init(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		NowFunc: opts.NowFunc,
		Logger:  opts.Logger,
	}
	if cfg.NowFunc == nil {
		cfg.NowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(opts.Path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", opts.Path, err)
	}

	err = db.AutoMigrate(&entity.Entry{})
	if err != nil {
		return nil, fmt.Errorf("migrate entries: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// A single connection keeps writes serialized and lets ":memory:"
	// databases survive across calls.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}
