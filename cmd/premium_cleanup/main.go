package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hut/internal/config"
	"hut/internal/modules/admin"
	"hut/internal/obs"
	"hut/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.AppEnv)

	persister, err := store.OpenPersister(cfg, logger)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}
	svc := admin.NewService(store.New(persister, logger), cfg.MinPasswordLength, logger)

	n, err := svc.ExpirePremium(context.Background(), time.Now().UTC())
	if err != nil {
		logger.Error("premium cleanup failed", "error", err)
		os.Exit(1)
	}
	logger.Info("premium cleanup completed", "expired_listings", n)
}
