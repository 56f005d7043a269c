// Package redisbackendfx provides an fx module for a Redis-backed
// persistent backend.
package redisbackendfx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/backend/redisbackend"
	"github.com/owlworks/recall/internal/stats"
	"github.com/owlworks/recall/internal/stats/logger"
	"github.com/owlworks/recall/internal/statsbackend"
)

// Module provides a Redis backend instrumented with operation metrics
// and owns the client lifecycle. Requires a Config and a *zap.Logger to
// be supplied.
var Module = fx.Module("redisbackend",
	fx.Provide(
		newStatsCollector,
		newBackend,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("recall.stats"))
}

// Config holds the Redis backend settings.
type Config struct {
	// Addr is the host:port of the Redis server.
	Addr string
	// Password is optional.
	Password string
	// DB selects the Redis logical database.
	DB int
	// Prefix namespaces all cache keys when non-empty.
	Prefix string
}

// Params holds dependencies for creating the backend.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided backend.
type Result struct {
	fx.Out

	Backend backend.Backend
}

func newBackend(p Params) (Result, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     p.Config.Addr,
		Password: p.Config.Password,
		DB:       p.Config.DB,
	})

	var opts []redisbackend.Option
	if p.Config.Prefix != "" {
		opts = append(opts, redisbackend.WithPrefix(p.Config.Prefix))
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	p.Logger.Named("recall").Debug("redis backend ready",
		zap.String("addr", p.Config.Addr),
		zap.String("prefix", p.Config.Prefix),
	)

	b := redisbackend.New(client, opts...)
	return Result{Backend: statsbackend.New(b, p.Collector)}, nil
}
