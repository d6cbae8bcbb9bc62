package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	mc := NewMetricsCollector(10)
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(mc))

	var seenID string
	r.HandleFunc("/personas/{id}", func(w http.ResponseWriter, r *http.Request) {
		seenID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/personas/42", nil))

	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rr.Header().Get(RequestIDHeader))

	traces := mc.GetTraces(1)
	require.Len(t, traces, 1)
	assert.Equal(t, "/personas/{id}", traces[0].Route)
	assert.Equal(t, "/personas/42", traces[0].Path)
	assert.Equal(t, http.StatusTeapot, traces[0].Status)
}

func TestMetricsMiddlewareKeepsIncomingRequestID(t *testing.T) {
	mc := NewMetricsCollector(10)
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(mc))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", mc.GetTraces(1)[0].RequestID)
}

func TestMetricsMiddlewareSupportsWebsocket(t *testing.T) {
	mc := NewMetricsCollector(10)
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(mc))
	upgrader := websocket.Upgrader{}
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("hello"))
	})

	srv := httptest.NewServer(TimeoutMiddleware(50 * time.Millisecond)(r))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(100 * time.Millisecond)
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(msg))
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	rr := httptest.NewRecorder()
	TimeoutMiddleware(20*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/personas", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, timeoutBody, rr.Body.String())
}

func TestTimeoutMiddlewareDisabled(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Deadline()
		assert.False(t, ok)
	})

	rr := httptest.NewRecorder()
	TimeoutMiddleware(0)(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWithQueryTimeout(t *testing.T) {
	ctx, cancel := WithQueryTimeout(nil)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(QueryTimeout), deadline, time.Second)
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:8000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/medication/render", nil)
	req.Header.Set("Origin", "http://localhost:8000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "http://localhost:8000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/medication/render", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"1"}`, rr.Body.String())
}
