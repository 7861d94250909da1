package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/SelectorHeal/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpanCreatesTrace(t *testing.T) {
	tracer := New("test", nil)
	defer tracer.Close()

	span, ctx := tracer.StartSpan(context.Background(), "root")
	assert.True(t, strings.HasPrefix(string(span.TraceID), id.TracePrefix+"_"))
	assert.Empty(t, span.ParentID)
	assert.Equal(t, span.TraceID, GetTraceID(ctx))
	assert.Equal(t, span.SpanID, GetSpanID(ctx))

	child, _ := tracer.StartSpan(ctx, "child")
	assert.Equal(t, span.TraceID, child.TraceID)
	assert.Equal(t, span.SpanID, child.ParentID)
	assert.NotEqual(t, span.SpanID, child.SpanID)
}

func TestExtractTraceContext(t *testing.T) {
	h := http.Header{}
	h.Set(TraceHeader, "trace_abc")
	h.Set(SpanHeader, "bad value\nwith newline")

	traceID, spanID := ExtractTraceContext(h)
	assert.Equal(t, id.TraceID("trace_abc"), traceID)
	assert.Empty(t, spanID)

	h.Set(TraceHeader, strings.Repeat("a", 200))
	traceID, _ = ExtractTraceContext(h)
	assert.Empty(t, traceID)
}

func TestFields(t *testing.T) {
	assert.Empty(t, Fields(context.Background()))

	ctx := WithTraceContext(context.Background(), "t1", "s1")
	assert.Equal(t, []zap.Field{zap.String("trace_id", "t1"), zap.String("span_id", "s1")}, Fields(ctx))
}

func TestCloseDrainsSpans(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("test", zap.New(core))

	ok, _ := tracer.StartSpan(context.Background(), "ok")
	ok.Finish()
	tracer.Submit(ok)

	failed, _ := tracer.StartSpan(context.Background(), "failed")
	failed.SetError(errors.New("boom"))
	failed.Finish()
	tracer.Submit(failed)

	tracer.Close()
	tracer.Close()

	assert.Equal(t, 1, logs.FilterMessage("span completed").Len())
	errs := logs.FilterMessage("span completed with error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, "failed", errs[0].ContextMap()["operation"])
	assert.EqualValues(t, http.StatusInternalServerError, errs[0].ContextMap()["status"])

	// Submitting after close is a no-op.
	late, _ := tracer.StartSpan(context.Background(), "late")
	tracer.Submit(late)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("test", zap.New(core))

	var seen id.TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/health", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("propagates incoming trace", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(TraceHeader, "trace_incoming")
		req.Header.Set(SpanHeader, "span_parent")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "trace_incoming", w.Header().Get(TraceHeader))
		assert.NotEmpty(t, w.Header().Get(SpanHeader))
		assert.NotEqual(t, "span_parent", w.Header().Get(SpanHeader))
		assert.Equal(t, id.TraceID("trace_incoming"), seen)
	})

	t.Run("starts a new trace", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.True(t, strings.HasPrefix(w.Header().Get(TraceHeader), "trace_"))
	})

	tracer.Close()

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /health", fields["operation"])
	assert.Equal(t, "span_parent", fields["parent_id"])
	assert.Equal(t, "200", fields["http.status"])
}
