package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/devapi"
	mongodb "github.com/prepwise/interview-portal/internal/infrastructure/db/mongo"
	"github.com/prepwise/interview-portal/internal/infrastructure/http/handlers"
	"github.com/prepwise/interview-portal/internal/pkg/config"
	"github.com/prepwise/interview-portal/internal/pkg/server"
	"github.com/prepwise/interview-portal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "devapi",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := map[string]handlers.Check{}

	var accounts ports.AccountRepository
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "interview-portal-devapi",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongodb.NewAccountRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo indexes")
		}
		accounts = repo
		ready["mongodb"] = handlers.MongoCheck(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("accounts: mongodb")
	} else {
		log.Info().Msg("accounts: in memory")
	}

	e := devapi.NewServer(devapi.Config{
		JWTSecret: cfg.DevAPI.JWTSecret,
		TokenTTL:  cfg.DevAPI.TokenTTL,
	}, accounts, logger.Component("devapi"))
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(ready).Readiness)

	if err := server.Run(ctx, server.New(":"+cfg.DevAPI.Port, e), log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
