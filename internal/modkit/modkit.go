// Package modkit provides module wiring for the API: a module owns a path
// prefix, its middlewares and the routes it registers under them
package modkit

import (
	"net/http"
	"time"

	"taupe/internal/platform/config"
	"taupe/internal/platform/metrics"
	phttp "taupe/internal/platform/net/http"
	pstrings "taupe/internal/platform/strings"
)

// Module is the common surface for API modules
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Name returns the module name
	Name() string
	// Prefix returns the path the module mounts under
	Prefix() string
}

// Deps holds core dependencies passed to modules
type Deps struct {
	Cfg       config.Conf
	Metrics   *metrics.Collector // nil disables run metrics
	StartedAt time.Time
}

// Option mutates build configuration for a module
type Option func(*buildCfg)

type buildCfg struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register func(phttp.Router)
}

// WithName sets a module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithRegister adds endpoints to the module router after its own
func WithRegister(fn func(phttp.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}

// Base is embeddable module plumbing built from options
type Base struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	register func(phttp.Router)
}

// Build applies opts over the defaults and returns the module plumbing.
// It panics when the result has no name or no prefix
func Build(defaults []Option, opts ...Option) Base {
	var c buildCfg
	for _, o := range append(append([]Option(nil), defaults...), opts...) {
		o(&c)
	}
	return Base{
		name:     pstrings.MustString(c.name, "module name"),
		prefix:   pstrings.MustPrefix(c.prefix),
		mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		register: c.register,
	}
}

// Name implements Module
func (b Base) Name() string { return b.name }

// Prefix implements Module
func (b Base) Prefix() string { return b.prefix }

// Middlewares returns the module's own middleware chain
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mw }

// Mount opens the module's prefix, applies its middlewares, then runs
// routes followed by any extra registration from WithRegister
func (b Base) Mount(r phttp.Router, routes func(phttp.Router)) {
	r.Route(b.Prefix(), func(rr phttp.Router) {
		if len(b.mw) > 0 {
			rr.Use(b.mw...)
		}
		routes(rr)
		if b.register != nil {
			b.register(rr)
		}
	})
}

// MountAll mounts every module onto r
func MountAll(r phttp.Router, mods ...Module) {
	for _, m := range mods {
		m.MountRoutes(r)
	}
}
