package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/doodlesbykumbi/ums-in-go/pkg/config"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/seed"
	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// loadConfig refreshes the process configuration and validates it
func loadConfig() (*config.UMSConfig, error) {
	if err := config.Reload(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newConnector(cfg *config.UMSConfig) *gormstore.Connector {
	return gormstore.NewConnector(gormstore.Config{
		Driver: cfg.DatabaseDriver,
		URL:    cfg.DatabaseURL,
		Logger: log.Logger,
	})
}

// initializeStore loads the seed at location and initializes the store
// with it. With wait set, a seed file that does not exist yet is waited for.
func initializeStore(ctx context.Context, connector *gormstore.Connector, location string, wait bool) error {
	src, err := seed.New(location)
	if err != nil {
		return err
	}

	if fileSrc, ok := src.(*seed.FileSource); ok && wait {
		if err := seed.WaitForFile(ctx, fileSrc.Path, log.Logger); err != nil {
			return fmt.Errorf("failed waiting for seed %s: %w", location, err)
		}
	}

	doc, err := src.Load(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("seed", location).
		Int("users", len(doc.Users)).
		Int("groups", len(doc.Groups)).
		Msg("initializing store")

	return connector.Initialize(ctx, doc)
}

// groupNames maps group ids to names for display
func groupNames(groups []model.Group) map[int64]string {
	names := make(map[int64]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}
	return names
}
