// Package http provides http transport for extraction and single record
// classification
package http

import (
	"bytes"
	"errors"
	"io"
	stdhttp "net/http"
	"strings"
	"sync"

	"taupe/internal/core/archive"
	"taupe/internal/core/classify"
	"taupe/internal/core/projection"
	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
	pnet "taupe/internal/platform/net"
	phttp "taupe/internal/platform/net/http"
	"taupe/internal/platform/net/http/bind"
	"taupe/internal/platform/net/middleware"
	dom "taupe/internal/services/extract/domain"
	extractsvc "taupe/internal/services/extract/service"

	"github.com/google/uuid"
)

// DefaultMaxUpload caps archive uploads when Deps leaves it unset
const DefaultMaxUpload int64 = 256 << 20

// Deps are the handler dependencies
type Deps struct {
	Recorder  dom.Recorder
	MaxUpload int64
}

type handlers struct{ deps Deps }

var registerOnce sync.Once

// RegisterValidators adds the extract_mode tag to the shared validator
func RegisterValidators() {
	registerOnce.Do(func() {
		_ = bind.RegisterValidation("extract_mode", func(fl bind.FieldLevel) bool {
			return projection.Valid(fl.Field().String())
		}, "{0} must be one of "+strings.Join(projection.Names(), ", "))
	})
}

// RegisterExtract mounts the archive upload endpoint
func RegisterExtract(r phttp.Router, d Deps) {
	RegisterValidators()
	if d.MaxUpload <= 0 {
		d.MaxUpload = DefaultMaxUpload
	}
	h := &handlers{deps: d}

	zipOnly := r.With(middleware.AllowContentType("application/zip", "application/octet-stream"))
	phttp.PostQuery[ExtractQuery](zipOnly, "/", h.extract)
}

// RegisterClassify mounts the single record classifier
func RegisterClassify(r phttp.Router) {
	h := &handlers{}
	phttp.PostJSON[ClassifyInput](r, "/", h.classify)
}

//
// Swagger DTOs and route docs
//

// ExtractQuery selects the projection for an upload
type ExtractQuery struct {
	Mode      string `query:"mode" validate:"omitempty,extract_mode" example:"quote-tweets"`
	Canonical bool   `query:"canonical" example:"false"`
}

// ExtractResponse is the result of one extraction
type ExtractResponse struct {
	ExtractionID string         `json:"extraction_id" example:"5f0c8a8e-1c0e-4a53-9b7e-2a8a3f0d9c11"`
	Handle       string         `json:"handle"        example:"alice"`
	Mode         string         `json:"mode"          example:"all-tweets"`
	Count        int            `json:"count"         example:"2"`
	Lines        []string       `json:"lines"`
	Counts       map[string]int `json:"counts"`
}

// ClassifyInput is one raw record plus the owner it belongs to. Exactly one
// of tweet or like is required
type ClassifyInput struct {
	Handle    string         `json:"handle"    validate:"required,max=64"`
	Canonical bool           `json:"canonical"`
	Tweet     *archive.Tweet `json:"tweet"     validate:"required_without=Like,excluded_with=Like"`
	Like      *archive.Like  `json:"like"      validate:"required_without=Tweet"`
}

// swagger:route POST /extract Extract extractArchive
// @Summary Extract URLs from an uploaded archive
// @Tags Extract
// @Accept application/zip
// @Produce json
// @Param mode query string false "Extraction mode"
// @Param canonical query bool false "Use twitter as the account in every URL"
// @Success 200 {object} ExtractResponse "ok"
// @Router /extract [post]
func (h *handlers) extract(r *stdhttp.Request, q ExtractQuery) (any, error) {
	mode := projection.Default
	if q.Mode != "" {
		m, err := projection.ParseMode(q.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	b, err := io.ReadAll(stdhttp.MaxBytesReader(nil, r.Body, h.deps.MaxUpload))
	if err != nil {
		var tooBig *stdhttp.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, perr.WithField(perr.InvalidArgf("archive exceeds %d bytes", tooBig.Limit), "body")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeFile, "read upload")
	}
	if len(b) == 0 {
		return nil, perr.WithField(perr.InvalidArgf("archive upload is empty"), "body")
	}

	id := uuid.NewString()
	reqID := pnet.RequestID(r.Context())
	ctx := pnet.WithRequest(r.Context(), "", id)
	ctx = logger.WithRequest(ctx, reqID, id)

	a, err := archive.Open(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	defer a.Close()

	res, err := extractsvc.New(dom.Options{Mode: mode, Canonical: q.Canonical}, h.deps.Recorder).Run(ctx, a)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("mode", mode.String()).Msg("extraction failed")
		return nil, err
	}

	counts := make(map[string]int, len(res.Counts))
	for cat, n := range res.Counts {
		counts[string(cat)] = n
	}
	lines := res.Lines
	if lines == nil {
		lines = []string{}
	}
	logger.C(ctx).Info().
		Str("handle", res.Handle).
		Str("mode", res.Mode.String()).
		Int("lines", len(lines)).
		Msg("extraction complete")

	return ExtractResponse{
		ExtractionID: id,
		Handle:       res.Handle,
		Mode:         res.Mode.String(),
		Count:        len(lines),
		Lines:        lines,
		Counts:       counts,
	}, nil
}

// swagger:route POST /classify Extract classifyRecord
// @Summary Classify a single tweet or like record
// @Tags Extract
// @Accept json
// @Produce json
// @Param payload body ClassifyInput true "Record"
// @Success 200 {object} classify.Row "ok"
// @Router /classify [post]
func (h *handlers) classify(_ *stdhttp.Request, in ClassifyInput) (any, error) {
	if in.Like != nil {
		return classify.Like(*in.Like, in.Handle, in.Canonical)
	}
	return classify.Tweet(*in.Tweet, in.Handle, in.Canonical)
}
