// Command cleanup-images removes locally kept scan photos older than
// the configured retention period. It is intended to be invoked by an
// external scheduler, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/plateful/mealscan/internal/app"
	"github.com/plateful/mealscan/internal/config"
	"github.com/plateful/mealscan/internal/images"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	store, err := images.NewStore(cfg.Cache.ImageDir, logger)
	if err != nil {
		logger.Error("open image dir", slog.String("error", err.Error()))
		os.Exit(1)
	}

	removed, err := store.Sweep(cfg.Cache.ImageRetention)
	if err != nil {
		logger.Error("sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("retention", cfg.Cache.ImageRetention),
		)
		os.Exit(1)
	}

	logger.Info("sweep completed",
		slog.Int("removed", removed),
		slog.Duration("retention", cfg.Cache.ImageRetention),
	)
}
