package net

import (
	"context"
	"errors"
	"net/http"
	"testing"

	perr "taupe/internal/platform/errors"
)

func TestWithRequest(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1", "ex-1")
	if RequestID(ctx) != "req-1" || ExtractionID(ctx) != "ex-1" {
		t.Fatalf("ids = %q %q", RequestID(ctx), ExtractionID(ctx))
	}

	empty := WithRequest(context.Background(), "", "")
	if RequestID(empty) != "" || ExtractionID(empty) != "" {
		t.Fatalf("empty ids should stay unset")
	}
}

func TestReply(t *testing.T) {
	status, w := OK(map[string]int{"n": 1}, "r")
	if status != http.StatusOK || w.Status != "OK" || w.RequestID != "r" || w.Data == nil {
		t.Fatalf("OK = %d %+v", status, w)
	}

	status, w = Error(perr.WithField(perr.UnsupportedModef("bad mode"), "mode"), "r")
	if status != http.StatusUnprocessableEntity || w.Code != perr.ErrorCodeUnsupportedMode || w.Field != "mode" {
		t.Fatalf("Error = %d %+v", status, w)
	}

	status, w = Error(errors.New("plain"), "")
	if status != http.StatusInternalServerError || w.Error == "" {
		t.Fatalf("plain Error = %d %+v", status, w)
	}

	if status, _ := Error(nil, ""); status != http.StatusOK {
		t.Fatalf("nil Error = %d", status)
	}
}
