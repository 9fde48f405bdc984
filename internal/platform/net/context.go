// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyExtractionID ctxKey = "extraction_id"

// WithRequest annotates context with the request id and, once assigned, the
// extraction id of the upload being processed
func WithRequest(ctx context.Context, reqID, extractionID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if extractionID != "" {
		ctx = context.WithValue(ctx, keyExtractionID, extractionID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ExtractionID returns the extraction id on the context if present
func ExtractionID(ctx context.Context) string {
	if v, ok := ctx.Value(keyExtractionID).(string); ok {
		return v
	}
	return ""
}
