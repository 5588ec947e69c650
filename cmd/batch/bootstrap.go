package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/config"
	"github.com/jeandelest/Queen-Back-Office/internal/database"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
)

type environment struct {
	cfg         *config.Config
	db          *gorm.DB
	validator   *integration.SchemaValidator
	invalidator cache.Invalidator
	closers     []func()
}

func (e *environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// bootstrap loads the configuration and opens the database. The redis cache
// is optional: when it is unreachable, invalidations are skipped with a warning.
func bootstrap(ctx context.Context) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	env := &environment{cfg: cfg, db: db}
	if sqlDB, err := db.DB(); err == nil {
		env.closers = append(env.closers, func() { _ = sqlDB.Close() })
	}

	env.validator = integration.NewSchemaValidator(integration.NewEmbeddedSchemaLoader())
	env.closers = append(env.closers, env.validator.Close)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	env.closers = append(env.closers, func() { _ = client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logrus.Warnf("Redis not reachable at %s, cache invalidation skipped: %v", cfg.Redis.Addr, err)
	} else {
		env.invalidator = cache.NewRedisInvalidator(client, cfg.Redis.Prefix)
	}

	return env, nil
}
