package http

import "net/http"

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a pure JSON handler for POST with a JSON body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}

// PostQuery mounts a handler for POST whose parameters come from the query
// string; the body is left for the handler to consume
func PostQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, QueryHandler(h))
}
