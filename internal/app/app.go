package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/plateful/mealscan/internal/adapter/mealapi"
	"github.com/plateful/mealscan/internal/adapter/sqlite"
	"github.com/plateful/mealscan/internal/auth"
	"github.com/plateful/mealscan/internal/config"
	"github.com/plateful/mealscan/internal/images"
	"github.com/plateful/mealscan/internal/service/feed"
	"github.com/plateful/mealscan/internal/service/meallog"
	"github.com/plateful/mealscan/internal/service/resultcache"
	"github.com/plateful/mealscan/internal/service/scan"
	"github.com/plateful/mealscan/pkg/ctxutil"
)

// Options carries collaborator-provided pieces the core does not
// implement itself.
type Options struct {
	// MealImageUploader pushes meal photos to remote storage. Nil means
	// meals persist without a remote image.
	MealImageUploader meallog.ImageUploader
}

// App wires configuration, the API client, local storage and the
// services into one ready-to-use object.
type App struct {
	Cfg      *config.Config
	Log      *slog.Logger
	Identity auth.Identity

	API    *mealapi.Client
	Cache  *resultcache.Cache
	Images *images.Store

	Scans *scan.Service
	Feed  *feed.Poller
	Meals *meallog.Service

	db *sql.DB
}

// New loads configuration and assembles the application.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	tokens, err := auth.NewStaticTokenSource(cfg.Auth)
	if err != nil {
		return nil, err
	}
	token, err := tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	identity, err := auth.IdentityFromToken(token)
	if err != nil {
		return nil, err
	}

	client := mealapi.NewClient(cfg.API, tokens, logger)

	db, err := sqlite.Open(cfg.Cache.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open result cache db: %w", err)
	}
	cache := resultcache.New(sqlite.NewResultStore(db), logger)

	imgStore, err := images.NewStore(cfg.Cache.ImageDir, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	if swept, err := imgStore.Sweep(cfg.Cache.ImageRetention); err != nil {
		logger.Warn("startup image sweep failed", slog.String("error", err.Error()))
	} else if swept > 0 {
		logger.Info("startup image sweep", slog.Int("removed", swept))
	}

	clock := clockwork.NewRealClock()

	return &App{
		Cfg:      cfg,
		Log:      logger,
		Identity: identity,
		API:      client,
		Cache:    cache,
		Images:   imgStore,
		Scans:    scan.New(client, cache, imgStore, cfg.Scan, clock, logger),
		Feed:     feed.NewPoller(client, cfg.Feed, clock, logger),
		Meals:    meallog.New(client, opts.MealImageUploader, imgStore, logger),
		db:       db,
	}, nil
}

// Context returns ctx with the authenticated user attached, ready for
// any API call.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxutil.WithUserID(ctx, a.Identity.UID)
}

// Close flushes pending cache writes and releases local storage.
func (a *App) Close() error {
	a.Feed.Stop()
	a.Cache.Flush()
	return a.db.Close()
}
