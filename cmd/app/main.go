package main

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/cookshelf/cookshelf-back/internal/config"
	"github.com/cookshelf/cookshelf-back/internal/db"
	"github.com/cookshelf/cookshelf-back/internal/store"
	"github.com/cookshelf/cookshelf-back/internal/transport"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewLogger,
			NewRepository,
			store.New,
			transport.NewHTTPServer,
		),
		fx.Invoke(func(server *transport.HTTPServer) {}),
	)

	app.Run()
}

func NewLogger() (*zap.SugaredLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func NewRepository(cfg *config.Config, logger *zap.SugaredLogger) (store.Repository, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("in-memory storage selected, state is lost on restart")
		return store.NullRepository{}, nil
	}

	client, err := db.NewGormClient(cfg)
	if err != nil {
		return nil, err
	}
	return db.NewRepository(client), nil
}
