// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"taupe/internal/core/projection"
	"taupe/internal/core/version"
	phttp "taupe/internal/platform/net/http"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	phttp.GetJSON(r, "/version", h.version)
	phttp.GetJSON(r, "/service", h.service)
	phttp.GetJSON(r, "/modes", h.modes)
}

//
// Swagger DTOs and route docs
//

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"taupe-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ModeInfo describes one extraction mode
type ModeInfo struct {
	Name   string `json:"name"   example:"quote-tweets"`
	Source string `json:"source" example:"data/tweets.js"`
}

// ModesResponse lists extraction modes and the default
type ModesResponse struct {
	Default string     `json:"default" example:"all-tweets"`
	Modes   []ModeInfo `json:"modes"`
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.For(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/modes Meta metaModes
// @Summary Extraction modes
// @Tags Meta
// @Produce json
// @Success 200 type ModesResponse ok
// @Router /meta/modes [get]
func (h *handlers) modes(_ *http.Request) (any, error) {
	out := ModesResponse{Default: projection.Default.String()}
	for _, m := range projection.Modes() {
		out.Modes = append(out.Modes, ModeInfo{Name: m.String(), Source: m.Source().Name})
	}
	return out, nil
}
