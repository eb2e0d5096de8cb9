package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddlewarePropagatesIncomingID(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "req-42" {
		t.Fatalf("context request id = %q, want req-42", seen)
	}
	if got := rec.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("response header = %q, want req-42", got)
	}
}

func TestRequestIDMiddlewareGeneratesWhenAbsent(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a generated request id header")
	}
}

func TestStatusRecorderCapturesStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}

	recorder.WriteHeader(http.StatusTeapot)
	if _, err := recorder.Write([]byte("short and stout")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if recorder.statusCode != http.StatusTeapot {
		t.Fatalf("statusCode = %d, want %d", recorder.statusCode, http.StatusTeapot)
	}
	if recorder.bytesWritten != len("short and stout") {
		t.Fatalf("bytesWritten = %d, want %d", recorder.bytesWritten, len("short and stout"))
	}
}
