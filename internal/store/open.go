package store

import (
	"fmt"
	"log/slog"

	"hut/internal/config"
	"hut/internal/database"
)

// OpenPersister builds the document persister selected by STORE_BACKEND.
func OpenPersister(cfg *config.Config, log *slog.Logger) (Persister, error) {
	if cfg.StoreBackend != "sql" {
		log.Info("using file store", "path", cfg.DBFilePath)
		return NewFilePersister(cfg.DBFilePath), nil
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	p := NewSQLPersister(db, cfg.DocumentKey)
	if err := p.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("migrate document table: %w", err)
	}
	return p, nil
}
