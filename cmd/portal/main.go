// @title        Interview Portal
// @version      1.0
// @description  Session, dashboards and job positions for the interview-prep portal.
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/api"
	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/core/service"
	"github.com/prepwise/interview-portal/internal/infrastructure/apiclient"
	redisdb "github.com/prepwise/interview-portal/internal/infrastructure/db/redis"
	"github.com/prepwise/interview-portal/internal/infrastructure/http/handlers"
	"github.com/prepwise/interview-portal/internal/infrastructure/tokenstore"
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
		Service: "portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := map[string]handlers.Check{}

	tokens, closeTokens, err := openTokenStore(ctx, cfg, ready, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Tokens.Store).Msg("token store unavailable")
	}
	defer closeTokens()

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, tokens, logger.Component("apiclient"))
	ready["api"] = handlers.APICheck(&http.Client{Timeout: cfg.API.Timeout}, cfg.API.BaseURL)

	session := service.NewSessionService(client, tokens, logger.Component("session"))
	session.Bootstrap(ctx)

	portal := service.NewPortalService(client, session, logger.Component("portal"))

	router := api.NewRouter(api.Deps{
		Session: session,
		Portal:  portal,
		Ready:   ready,
		Log:     logger.Component("http"),
	})

	log.Info().
		Str("env", cfg.Env).
		Str("api", cfg.API.BaseURL).
		Str("session", string(session.State())).
		Msg("portal configured")

	if err := server.Run(ctx, server.New(":"+cfg.Port, router), log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func openTokenStore(ctx context.Context, cfg *config.Config, ready map[string]handlers.Check, log zerolog.Logger) (ports.TokenStore, func(), error) {
	switch cfg.Tokens.Store {
	case config.TokenStoreRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		ready["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token store: redis")
		return tokenstore.NewRedis(rdb, tokenstore.DefaultRedisKey), func() { _ = rdb.Close() }, nil

	case config.TokenStoreMemory:
		log.Warn().Msg("token store: memory, sessions will not survive a restart")
		return tokenstore.NewMemory(), func() {}, nil

	default:
		fs, err := tokenstore.NewFile(cfg.Tokens.File)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", fs.Path()).Msg("token store: file")
		return fs, func() {}, nil
	}
}
