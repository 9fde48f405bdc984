// @title         Taupe API
// @version       0.1.0
// @description   Upload a Twitter archive, get its URLs back

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taupe/internal/platform/config"
	"taupe/internal/platform/logger"
	"taupe/internal/platform/metrics"
	phttp "taupe/internal/platform/net/http"

	"taupe/internal/services/api"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// service-scoped config for HTTP etc (TAUPE_API_*)
	apiCfg := config.New().Prefix("TAUPE_API_")

	// bring up logging early
	l := logger.Get()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	// http server (reads TAUPE_API_ADDR and timeouts)
	srv := phttp.NewServer(apiCfg)

	stop := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Metrics:        collector,
			Gatherer:       reg,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		cancel()
		stop()
		os.Exit(1)
	}
	l.Info().Msg("bye")
}
