package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/recruithub/recruiting-system/docs"
	"github.com/recruithub/recruiting-system/internal/api"
	"github.com/recruithub/recruiting-system/internal/infrastructure/config"
	mongodb "github.com/recruithub/recruiting-system/internal/infrastructure/db/mongo"
	redisdb "github.com/recruithub/recruiting-system/internal/infrastructure/db/redis"
	"github.com/recruithub/recruiting-system/pkg/logger"
)

// @title        Recruiting System API
// @version      1.0
// @description  Multi-tenant identity, tenant-resolution, and access-control service.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	ensureIndexes(ctx, db, log)

	e := api.NewRouter(db, rdb, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("recruiting-system started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// ensureIndexes creates collection indexes at startup. Failures are logged
// but not fatal; the service can serve with degraded query plans.
func ensureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	for name, repo := range map[string]indexer{
		"companies":   mongodb.NewCompanyRepository(db),
		"clients":     mongodb.NewClientRepository(db),
		"users":       mongodb.NewUserRepository(db),
		"hierarchies": mongodb.NewHierarchyRepository(db),
		"campaigns":   mongodb.NewCampaignRepository(db),
		"audit":       mongodb.NewAuditRepository(db),
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}
}
