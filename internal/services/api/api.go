// Package api provides the HTTP API for taupe
package api

import (
	"time"

	"taupe/internal/modkit"
	"taupe/internal/platform/config"
	"taupe/internal/platform/logger"
	"taupe/internal/platform/metrics"
	phttp "taupe/internal/platform/net/http"
	"taupe/internal/platform/net/middleware"

	"taupe/internal/services/api/docs"
	extractmod "taupe/internal/services/api/extract/module"
	metamod "taupe/internal/services/api/meta/module"

	"github.com/prometheus/client_golang/prometheus"
)

// BasePath is where the versioned API is mounted
const BasePath = "/api/v1"

// Options are the API options
type Options struct {
	Config         config.Conf
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer // serves /metrics when set
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router. The returned func
// releases background resources and should be called on shutdown
func Mount(r phttp.Router, opt Options) (stop func()) {
	cfg := opt.Config

	// root middleware must be in place before any route
	r.Use(
		middleware.Heartbeat("/healthz"),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil)}),
	)

	deps := modkit.Deps{
		Cfg:       cfg,
		Metrics:   opt.Metrics,
		StartedAt: time.Now(),
	}

	extract := extractmod.New(deps, extractmod.FromConfig(deps))
	mods := []modkit.Module{
		metamod.New(deps),
		extract,
		extractmod.NewClassify(),
	}

	if opt.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(opt.Gatherer))
	}
	mountDocs(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	access := middleware.AccessLogOptions{Slow: cfg.MayDuration("SLOW", 2*time.Second)}
	if opt.Metrics != nil {
		access.OnStatus = opt.Metrics.RecordHTTPStatus
	}
	stack := middleware.Defaults(cfg.MayDuration("REQUEST_TIMEOUT", time.Minute), access)

	r.Route(BasePath, func(api phttp.Router) {
		api.Use(stack...)
		modkit.MountAll(api, mods...)
	})

	logger.Named("api").Debug().Int("modules", len(mods)).Bool("swagger", opt.EnableSwagger).Msg("api mounted")
	return extract.Stop
}

func mountDocs(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	doc, err := docs.Spec(BasePath)
	if err != nil {
		logger.Named("api").Error().Err(err).Msg("openapi document unusable; docs disabled")
		return
	}
	phttp.MountSwagger(r, "/api/docs", doc, true)
}
