// Package fsbackendfx provides an fx module for a filesystem-backed
// persistent backend.
package fsbackendfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/owlworks/recall/backend"
	"github.com/owlworks/recall/backend/fsbackend"
	"github.com/owlworks/recall/internal/stats"
	"github.com/owlworks/recall/internal/stats/logger"
	"github.com/owlworks/recall/internal/statsbackend"
)

// Module provides a filesystem backend instrumented with operation
// metrics. Requires a Config and a *zap.Logger to be supplied.
var Module = fx.Module("fsbackend",
	fx.Provide(
		newStatsCollector,
		newBackend,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("recall.stats"))
}

// Config holds the filesystem backend settings.
type Config struct {
	// Dir is the cache directory, created if it does not exist.
	Dir string
}

// Params holds dependencies for creating the backend.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
}

// Result holds the provided backend.
type Result struct {
	fx.Out

	Backend backend.Backend
}

func newBackend(p Params) (Result, error) {
	b, err := fsbackend.New(p.Config.Dir)
	if err != nil {
		return Result{}, err
	}

	p.Logger.Named("recall").Debug("filesystem backend ready",
		zap.String("dir", p.Config.Dir),
	)

	return Result{Backend: statsbackend.New(b, p.Collector)}, nil
}
