// Package module wires meta endpoints into the API
package module

import (
	"taupe/internal/modkit"
	phttp "taupe/internal/platform/net/http"

	metahttp "taupe/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	deps modkit.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		Base: modkit.Build([]modkit.Option{
			modkit.WithName("meta"),
			modkit.WithPrefix("/meta"),
		}, opts...),
		deps: deps,
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	m.Mount(r, func(rr phttp.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "taupe-api",
			StartedAt:   m.deps.StartedAt,
		})
	})
}
