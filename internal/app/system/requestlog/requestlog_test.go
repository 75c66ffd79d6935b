package requestlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_GeneratesID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := requestlog.Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestlog.ID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/requests", nil))

	if seen == "" {
		t.Fatal("expected a request id in the handler context")
	}
	if got := rec.Header().Get(requestlog.Header); got != seen {
		t.Errorf("response header: got %q, want %q", got, seen)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one log line, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["path"] != "/requests" {
		t.Errorf("path: got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status: got %v", fields["status"])
	}
}

func TestMiddleware_KeepsClientID(t *testing.T) {
	h := requestlog.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestlog.Header, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestlog.Header); got != "abc-123" {
		t.Errorf("expected client id echoed, got %q", got)
	}
}

func TestField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	h := requestlog.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("handled", requestlog.Field(r.Context()))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestlog.Header, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if logs.Len() != 1 {
		t.Fatalf("expected one log line, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["request_id"]; got != "abc-123" {
		t.Errorf("request_id: got %v", got)
	}
}
