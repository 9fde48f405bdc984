package http

import (
	stdhttp "net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the swagger UI under prefix+"/*" and the OpenAPI
// document it renders at prefix+"/doc.json"
func MountSwagger(r Router, prefix string, doc []byte, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(httpSwagger.URL(prefix + "/doc.json"))
	r.Get(prefix+"/doc.json", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
	r.Get(prefix+"/*", ui)
}
