package cmd

import (
	"table-reconciler/core/config"
	"table-reconciler/core/database"
	"table-reconciler/core/storage"
	"table-reconciler/feature/dataset"

	"go.uber.org/zap"
)

// deps holds the dataset sources shared by the commands.
type deps struct {
	store    storage.Client
	csv      *dataset.CSVLoader
	registry *dataset.Registry
}

// buildDeps wires the dataset loaders. The database is optional: without it
// the sql scheme is simply not registered.
func buildDeps(cfg *config.Config, l *zap.Logger) (*deps, error) {
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	csvLoader := dataset.NewCSVLoader(store, cfg.Storage.Bucket)
	registry := dataset.NewRegistry(l, csvLoader, dataset.NewSyntheticLoader())

	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed", zap.Error(err))
	} else {
		registry.Register(dataset.NewSQLLoader(db))
		l.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("name", cfg.Database.Name),
		)
	}

	return &deps{store: store, csv: csvLoader, registry: registry}, nil
}
