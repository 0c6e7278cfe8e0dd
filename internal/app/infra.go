package app

import (
	"context"

	"github.com/Dmc0125/task-app/internal/config"
	"github.com/Dmc0125/task-app/internal/db"
	"github.com/Dmc0125/task-app/internal/logger"
)

type Infra struct {
	DB *db.DB
}

func setupInfra(ctx context.Context, cfg *config.Config) (*Infra, error) {
	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigration(ctx, database); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	return &Infra{DB: database}, nil
}
