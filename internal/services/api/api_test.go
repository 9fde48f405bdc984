package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taupe/internal/core/archive"
	"taupe/internal/platform/config"
	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/metrics"
	phttp "taupe/internal/platform/net/http"
	kit "taupe/internal/platform/testkit"
	"taupe/internal/services/api"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const tweetsJS = `window.YTD.tweets.part0 = [
 {"tweet":{"id":"2","id_str":"2","created_at":"Tue Jan 02 00:00:00 +0000 2024","full_text":"@bob yes","in_reply_to_status_id_str":"9","in_reply_to_screen_name":"bob"}},
 {"tweet":{"id":"1","id_str":"1","created_at":"Mon Jan 01 00:00:00 +0000 2024","full_text":"hello"}}
]`

const likesJS = `window.YTD.like.part0 = [
 {"like":{"tweetId":"42","expandedUrl":"https://twitter.com/i/web/status/42"}}
]`

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
}

type extractData struct {
	ExtractionID string         `json:"extraction_id"`
	Handle       string         `json:"handle"`
	Mode         string         `json:"mode"`
	Count        int            `json:"count"`
	Lines        []string       `json:"lines"`
	Counts       map[string]int `json:"counts"`
}

type env struct {
	mux *chi.Mux
	reg *prometheus.Registry
}

// newAPI mounts the API with env config under prefix
func newAPI(t *testing.T, prefix string) env {
	t.Helper()
	reg := prometheus.NewRegistry()
	mux := chi.NewRouter()
	stop := api.Mount(phttp.AdaptChi(mux), api.Options{
		Config:        config.New().Prefix(prefix),
		Metrics:       metrics.NewCollector(reg),
		Gatherer:      reg,
		EnableSwagger: true,
	})
	t.Cleanup(stop)
	return env{mux: mux, reg: reg}
}

func (e env) do(t *testing.T, method, path, ctype string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	var out envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode envelope: %v body=%s", err, rec.Body.String())
		}
	}
	return rec, out
}

func archiveZip(t *testing.T) []byte {
	return kit.Zip(t, map[string]string{
		archive.AccountMember.Name: `window.YTD.account.part0 = [{"account":{"username":"alice"}}]`,
		archive.TweetsMember.Name:  tweetsJS,
		archive.LikesMember.Name:   likesJS,
	})
}

func TestHealthzAndMeta(t *testing.T) {
	e := newAPI(t, "TAUPE_TEST_META_")

	rec, _ := e.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}

	rec, out := e.do(t, http.MethodGet, "/api/v1/meta/version", "", nil)
	if rec.Code != http.StatusOK || out.RequestID == "" {
		t.Fatalf("version = %d %+v", rec.Code, out)
	}
	kit.MustContain(t, string(out.Data), `"service":"taupe-api"`)

	rec, out = e.do(t, http.MethodGet, "/api/v1/meta/modes", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("modes = %d", rec.Code)
	}
	kit.MustContain(t, string(out.Data), `"default":"all-tweets"`)
	kit.MustContain(t, string(out.Data), `"source":"data/like.js"`)

	rec, out = e.do(t, http.MethodGet, "/api/v1/meta/service", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("service = %d", rec.Code)
	}
	kit.MustContain(t, string(out.Data), `"uptime"`)
}

func TestExtract(t *testing.T) {
	e := newAPI(t, "TAUPE_TEST_EXTRACT_")
	zipBody := archiveZip(t)

	cases := []struct {
		name  string
		query string
		mode  string
		lines []string
	}{
		{"default mode", "", "all-tweets", []string{
			"2024-01-01T00:00:00+00:00,https://twitter.com/alice/status/1,tweet,",
			"2024-01-02T00:00:00+00:00,https://twitter.com/alice/status/2,reply,https://twitter.com/bob/status/9",
		}},
		{"synonym", "?mode=Replies", "reply-tweets", []string{"https://twitter.com/bob/status/9"}},
		{"likes", "?mode=likes", "likes", []string{"https://twitter.com/alice/status/42"}},
		{"canonical likes", "?mode=likes&canonical=true", "likes", []string{"https://twitter.com/twitter/status/42"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, out := e.do(t, http.MethodPost, "/api/v1/extract"+c.query, "application/zip", zipBody)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			var data extractData
			if err := json.Unmarshal(out.Data, &data); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if data.Handle != "alice" || data.Mode != c.mode || data.ExtractionID == "" {
				t.Fatalf("data = %+v", data)
			}
			if data.Count != len(c.lines) || strings.Join(data.Lines, "\n") != strings.Join(c.lines, "\n") {
				t.Fatalf("lines = %q, want %q", data.Lines, c.lines)
			}
		})
	}

	rec, _ := e.do(t, http.MethodGet, "/metrics", "", nil)
	kit.MustContain(t, rec.Body.String(), `taupe_extractions_total{mode="likes"} 2`)
	kit.MustContain(t, rec.Body.String(), `taupe_http_responses_total{status_code="200"}`)
}

func TestExtract_Errors(t *testing.T) {
	e := newAPI(t, "TAUPE_TEST_EXTRACT_ERR_")
	noLikes := kit.Zip(t, map[string]string{
		archive.AccountMember.Name: `window.YTD.account.part0 = [{"account":{"username":"alice"}}]`,
		archive.TweetsMember.Name:  tweetsJS,
	})

	cases := []struct {
		name   string
		query  string
		ctype  string
		body   []byte
		status int
		code   perr.ErrorCode
		field  string
	}{
		{"unknown mode", "?mode=bookmarks", "application/zip", archiveZip(t), http.StatusBadRequest, perr.ErrorCodeValidation, "mode"},
		{"empty body", "", "application/zip", nil, http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument, "body"},
		{"not a zip", "", "application/octet-stream", []byte("hello"), http.StatusUnprocessableEntity, perr.ErrorCodeMalformedArchive, ""},
		{"missing member", "?mode=likes", "application/zip", noLikes, http.StatusUnprocessableEntity, perr.ErrorCodeMalformedArchive, archive.LikesMember.Name},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, out := e.do(t, http.MethodPost, "/api/v1/extract"+c.query, c.ctype, c.body)
			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d body=%s", rec.Code, c.status, rec.Body.String())
			}
			if out.Code != c.code || out.Field != c.field {
				t.Fatalf("code/field = %d/%q, want %d/%q (%s)", out.Code, out.Field, c.code, c.field, out.Error)
			}
		})
	}

	rec, _ := e.do(t, http.MethodPost, "/api/v1/extract", "text/plain", []byte("x"))
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("content type = %d, want 415", rec.Code)
	}

	rec, _ = e.do(t, http.MethodGet, "/metrics", "", nil)
	kit.MustContain(t, rec.Body.String(), `taupe_extraction_failures_total{reason="malformed_archive"} 1`)
}

func TestExtract_UploadLimit(t *testing.T) {
	t.Setenv("TAUPE_TEST_LIMIT_MAX_UPLOAD_BYTES", "16")
	e := newAPI(t, "TAUPE_TEST_LIMIT_")

	rec, out := e.do(t, http.MethodPost, "/api/v1/extract", "application/zip", archiveZip(t))
	if rec.Code != http.StatusUnprocessableEntity || out.Code != perr.ErrorCodeInvalidArgument {
		t.Fatalf("oversized = %d %+v", rec.Code, out)
	}
	kit.MustContain(t, out.Error, "exceeds 16 bytes")
}

func TestExtract_RateLimited(t *testing.T) {
	t.Setenv("TAUPE_TEST_RL_RATE", "0.001")
	t.Setenv("TAUPE_TEST_RL_BURST", "1")
	t.Setenv("TAUPE_TEST_RL_RATE_PER_CLIENT", "false")
	e := newAPI(t, "TAUPE_TEST_RL_")
	body := archiveZip(t)

	if rec, _ := e.do(t, http.MethodPost, "/api/v1/extract", "application/zip", body); rec.Code != http.StatusOK {
		t.Fatalf("first = %d", rec.Code)
	}
	rec, out := e.do(t, http.MethodPost, "/api/v1/extract", "application/zip", body)
	if rec.Code != http.StatusTooManyRequests || out.Code != perr.ErrorCodeTooManyRequests {
		t.Fatalf("second = %d %+v", rec.Code, out)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}

	// classify is not behind the upload limiter
	rec, _ = e.do(t, http.MethodPost, "/api/v1/classify", "application/json",
		[]byte(`{"handle":"alice","like":{"expandedUrl":"https://twitter.com/bob/status/1"}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("classify after limit = %d", rec.Code)
	}
}

func TestClassify(t *testing.T) {
	e := newAPI(t, "TAUPE_TEST_CLASSIFY_")

	cases := []struct {
		name   string
		body   string
		status int
		want   string
		field  string
	}{
		{
			"quote tweet",
			`{"handle":"alice","tweet":{"id_str":"5","created_at":"Mon Jan 01 00:00:00 +0000 2024","full_text":"look https://t.co/x","entities":{"urls":[{"url":"https://t.co/x","expanded_url":"https://twitter.com/bob/status/9"}]}}}`,
			http.StatusOK,
			`"referenced_url":"https://twitter.com/bob/status/9"`,
			"",
		},
		{
			"canonical like",
			`{"handle":"alice","canonical":true,"like":{"expandedUrl":"https://twitter.com/i/web/status/3"}}`,
			http.StatusOK,
			`"referenced_url":"https://twitter.com/twitter/status/3"`,
			"",
		},
		{"missing handle", `{"like":{"expandedUrl":"https://twitter.com/bob/status/1"}}`, http.StatusBadRequest, "", "handle"},
		{"neither record", `{"handle":"alice"}`, http.StatusBadRequest, "", "tweet"},
		{
			"both records",
			`{"handle":"alice","tweet":{"id_str":"1"},"like":{"expandedUrl":"https://twitter.com/bob/status/1"}}`,
			http.StatusBadRequest, "", "tweet",
		},
		{"tweet missing text", `{"handle":"alice","tweet":{"id_str":"1","created_at":"Mon Jan 01 00:00:00 +0000 2024"}}`, http.StatusUnprocessableEntity, "", "full_text"},
		{"bad json", `{"handle":`, http.StatusBadRequest, "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, out := e.do(t, http.MethodPost, "/api/v1/classify", "application/json", []byte(c.body))
			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d body=%s", rec.Code, c.status, rec.Body.String())
			}
			if c.want != "" {
				kit.MustContain(t, string(out.Data), c.want)
			}
			if out.Field != c.field {
				t.Fatalf("field = %q, want %q", out.Field, c.field)
			}
		})
	}
}

func TestDocs(t *testing.T) {
	e := newAPI(t, "TAUPE_TEST_DOCS_")

	rec, _ := e.do(t, http.MethodGet, "/api/docs/doc.json", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"url":"/api/v1"`)
	kit.MustContain(t, rec.Body.String(), `"ErrorResponse"`)
}
