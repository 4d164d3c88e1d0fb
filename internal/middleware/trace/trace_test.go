package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "finboard/internal/log"
)

func TestMiddlewareTracesRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Output: &buf})
	m := NewMiddleware(func(*http.Request) string { return "203.0.113.9" }, logger)

	var seenID string
	var seenComponent string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		seenComponent = applog.FromContext(r.Context()).Component()
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.True(t, strings.HasPrefix(seenID, "req_"))
	assert.Equal(t, seenID, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, applog.ComponentHTTP, seenComponent)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "HTTP request started")
	assert.Contains(t, out, "status_code=418")
	assert.Contains(t, out, "client_ip=203.0.113.9")
	assert.Contains(t, out, "level=WARN")

	metrics := m.GetMetrics()
	assert.EqualValues(t, 1, metrics.TotalRequests)
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("req_")+16)
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
