package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

// TestStartSpan 测试Span创建与ID提取
// InitTracer的exporter是懒连接的，不需要真实的Collector
func TestStartSpan(t *testing.T) {
	shutdown, err := InitTracer("bookdepot-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	t.Run("创建根Span", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "bookdepot-test", "BulkImport")
		defer span.End()

		span.SetAttributes(attribute.Int("rows", 3))

		if !span.SpanContext().IsValid() {
			t.Error("Span上下文无效")
		}
		if ExtractTraceID(ctx) == "" {
			t.Error("应能从Context提取TraceID")
		}
		if ExtractSpanID(ctx) == "" {
			t.Error("应能从Context提取SpanID")
		}
	})

	t.Run("子Span共享TraceID", func(t *testing.T) {
		ctx, parent := StartSpan(context.Background(), "bookdepot-test", "BulkImport")
		defer parent.End()

		childCtx, child := StartSpan(ctx, "bookdepot-test", "ApplyDelta")
		defer child.End()

		if ExtractTraceID(ctx) != ExtractTraceID(childCtx) {
			t.Error("子Span应与父Span共享TraceID")
		}
		if ExtractSpanID(ctx) == ExtractSpanID(childCtx) {
			t.Error("子Span应有独立的SpanID")
		}
	})
}

// TestExtractTraceID_NoSpan 无Span的Context返回空串
func TestExtractTraceID_NoSpan(t *testing.T) {
	if got := ExtractTraceID(context.Background()); got != "" {
		t.Errorf("期望空串，实际%q", got)
	}
}
