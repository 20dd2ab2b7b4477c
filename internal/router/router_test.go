package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shaibs3/election-api/internal/telemetry"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	router.HandleFunc("/api/echo/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mux.Vars(r)["id"] + ":" + RequestID(r.Context())))
	}).Methods(http.MethodGet)
}

func setupTestRouter(t *testing.T, limiter *rate.Limiter) *Router {
	t.Helper()
	tel, err := telemetry.NewTelemetry(zap.NewNop())
	require.NoError(t, err)
	return NewRouter(limiter, tel, zap.NewNop(), []Handler{echoHandler{}})
}

func TestRouter_UnmatchedRoutesReturnEmpty404(t *testing.T) {
	r := setupTestRouter(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/unknown"},
		{http.MethodPost, "/api/echo/1"},
		{http.MethodDelete, "/health"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		require.Empty(t, w.Body.String(), "%s %s", tc.method, tc.path)
	}
}

func TestRouter_HandlerRoutesAndRequestID(t *testing.T) {
	r := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/echo/7", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "7:req-123", w.Body.String())
	require.Equal(t, "req-123", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/echo/8", nil))
	require.NotEmpty(t, w.Header().Get(requestIDHeader), "a request id should be generated")
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := setupTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/echo/1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_RateLimit(t *testing.T) {
	r := setupTestRouter(t, rate.NewLimiter(rate.Every(1e12), 1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/echo/1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/echo/1", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRouter_CreateServer(t *testing.T) {
	r := setupTestRouter(t, nil)
	server := r.CreateServer(":3001")
	require.Equal(t, ":3001", server.Addr)
	require.Same(t, r, server.Handler)
}
