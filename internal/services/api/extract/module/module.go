// Package module wires the extract and classify endpoints into the API
package module

import (
	"taupe/internal/modkit"
	phttp "taupe/internal/platform/net/http"
	"taupe/internal/platform/net/middleware"
	dom "taupe/internal/services/extract/domain"

	extracthttp "taupe/internal/services/api/extract/http"

	"golang.org/x/time/rate"
)

// Options configure the extract module
type Options struct {
	MaxUpload int64
	RateLimit middleware.RateLimitOptions
}

// FromConfig reads extract options from deps.Cfg
func FromConfig(deps modkit.Deps) Options {
	c := deps.Cfg
	return Options{
		MaxUpload: int64(c.MayInt("MAX_UPLOAD_BYTES", int(extracthttp.DefaultMaxUpload))),
		RateLimit: middleware.RateLimitOptions{
			Rate:      rate.Limit(c.MayFloat64("RATE", 1)),
			Burst:     c.MayInt("BURST", 5),
			PerClient: c.MayBool("RATE_PER_CLIENT", true),
		},
	}
}

// Module implements the modkit.Module interface for POST /extract
type Module struct {
	modkit.Base
	deps    modkit.Deps
	opts    Options
	limiter *middleware.RateLimiter
}

// New constructs the extract module. Uploads are rate limited; call Stop to
// end the limiter's cleanup loop
func New(deps modkit.Deps, opts Options, mopts ...modkit.Option) *Module {
	rl := middleware.NewRateLimiter(opts.RateLimit)
	return &Module{
		Base: modkit.Build([]modkit.Option{
			modkit.WithName("extract"),
			modkit.WithPrefix("/extract"),
			modkit.WithMiddlewares(rl.Middleware),
		}, mopts...),
		deps:    deps,
		opts:    opts,
		limiter: rl,
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	m.Mount(r, func(rr phttp.Router) {
		extracthttp.RegisterExtract(rr, extracthttp.Deps{
			Recorder:  recorder(m.deps),
			MaxUpload: m.opts.MaxUpload,
		})
	})
}

// Stop releases the rate limiter
func (m *Module) Stop() { m.limiter.Stop() }

// ClassifyModule implements the modkit.Module interface for POST /classify
type ClassifyModule struct {
	modkit.Base
}

// NewClassify constructs the classify module
func NewClassify(opts ...modkit.Option) modkit.Module {
	return &ClassifyModule{Base: modkit.Build([]modkit.Option{
		modkit.WithName("classify"),
		modkit.WithPrefix("/classify"),
	}, opts...)}
}

// MountRoutes implements the modkit.Module interface
func (m *ClassifyModule) MountRoutes(r phttp.Router) {
	m.Mount(r, extracthttp.RegisterClassify)
}

func recorder(deps modkit.Deps) dom.Recorder {
	if deps.Metrics == nil {
		return nil
	}
	return deps.Metrics
}
