package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func teapot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("short and stout"))
}

func TestChain_OrderIsOutermostFirst(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(teapot), mark("a"), mark("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b"}, order)
}

func TestRecover_PanicBecomes500(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("render exploded")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestRecover_PassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Recover()(http.HandlerFunc(teapot)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestAccessLog_RecordsRequest(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	rec := httptest.NewRecorder()
	AccessLog()(http.HandlerFunc(teapot)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "POST", entry.Data["method"])
	assert.Equal(t, "/brew", entry.Data["path"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, len("short and stout"), entry.Data["bytes"])
	assert.Equal(t, rec.Header().Get("X-Request-Id"), entry.Data["request_id"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAccessLog_KeepsIncomingRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()

	AccessLog()(http.HandlerFunc(teapot)).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestStatusRecorder_DefaultsTo200(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	assert.Equal(t, http.StatusOK, rec.Status())

	rec.Write([]byte("x"))
	rec.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusOK, rec.Status())
}

func TestTrace_RecordsOneSpanPerRequest(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	h := Trace(tp)(http.HandlerFunc(teapot))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/style.css", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /assets/css/style.css", spans[0].Name())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, spans[0].SpanContext().TraceID().String(), entry.Data["trace_id"])
}

func TestInitTracer_WithoutEndpoint(t *testing.T) {
	tp, err := InitTracer(context.Background(), DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, tp.Shutdown(context.Background()))
}
