package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voxgate/voxgate/internal/config"
	"github.com/voxgate/voxgate/internal/observability"
	"github.com/voxgate/voxgate/internal/providers"
	"github.com/voxgate/voxgate/internal/services/usage"
	"github.com/voxgate/voxgate/internal/translate"
)

// Container aggregates runtime dependencies for handlers.
type Container struct {
	Config        *config.Config
	DBPool        *pgxpool.Pool
	Providers     *providers.Set
	Translators   *translate.Registry
	Usage         *usage.Recorder
	Observability *observability.Provider
}

// NewContainer builds a dependency container from the provided primitives.
// pool may be nil when usage recording is disabled.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	set, err := providers.NewFactory(cfg).BuildSet()
	if err != nil {
		return nil, fmt.Errorf("build providers: %w", err)
	}

	registry := translate.NewRegistry(set.Translators, cfg.Translation.Languages)

	obs, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("setup observability: %w", err)
	}

	return &Container{
		Config:        cfg,
		DBPool:        pool,
		Providers:     set,
		Translators:   registry,
		Usage:         usage.NewRecorder(pool),
		Observability: obs,
	}, nil
}
