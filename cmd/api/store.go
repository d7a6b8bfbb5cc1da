package main

import (
	"context"
	"database/sql"
	"fmt"

	"devjournal/cmd/internal/config"
	"devjournal/cmd/internal/domain/postgres"
	pgrepository "devjournal/cmd/internal/domain/postgres/repository"
	"devjournal/cmd/internal/domain/sqlite"
	"devjournal/cmd/internal/domain/sqlite/repository"
	"devjournal/cmd/internal/service"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type entryStore struct {
	Entries service.EntryRepository
	db      *sql.DB
}

func (s *entryStore) Close() error {
	return s.db.Close()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, level log.Lvl) (*entryStore, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, postgres.Options{
			DSN:            cfg.URL,
			MaxConns:       cfg.MaxConns,
			IdleTimeout:    cfg.IdleTimeout,
			ConnectTimeout: cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}

		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &entryStore{Entries: pgrepository.NewEntryRepository(db), db: db}, nil

	case config.DriverSQLite:
		gormLogger := logger.Default.LogMode(logger.Silent)
		if level == log.DEBUG {
			gormLogger = logger.Default.LogMode(logger.Info)
		}

		gdb, err := sqlite.Init(sqlite.Options{Path: cfg.SQLitePath, Logger: gormLogger})
		if err != nil {
			return nil, err
		}

		db, err := gdb.DB()
		if err != nil {
			closeGorm(gdb)
			return nil, err
		}
		log.Infof("using sqlite database at %s", cfg.SQLitePath)
		return &entryStore{Entries: repository.NewEntryRepository(gdb), db: db}, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
}

// closeGorm releases whatever connection gdb still holds when the pool
// itself could not be handed out.
func closeGorm(gdb *gorm.DB) {
	if closer, ok := gdb.ConnPool.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
