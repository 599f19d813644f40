// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/carterperez-dev/greensteps/internal/config"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestStartSpan(t *testing.T) {
	rec := recordSpans(t)

	_, end := StartSpan(context.Background(), "ok.op", attribute.Int64("user_id", 7))
	end(nil)
	_, end = StartSpan(context.Background(), "failed.op")
	end(errors.New("boom"))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}

	ok := spans[0]
	if ok.Name() != "ok.op" || ok.Status().Code == codes.Error {
		t.Fatalf("span %q status = %v, want unset error", ok.Name(), ok.Status())
	}
	found := false
	for _, kv := range ok.Attributes() {
		if kv.Key == "user_id" && kv.Value.AsInt64() == 7 {
			found = true
		}
	}
	if !found {
		t.Fatalf("attributes = %v, want user_id=7", ok.Attributes())
	}

	failed := spans[1]
	if failed.Status().Code != codes.Error || failed.Status().Description != "boom" {
		t.Fatalf("failed status = %v, want Error boom", failed.Status())
	}
}

func TestStartSpanNestsUnderParent(t *testing.T) {
	rec := recordSpans(t)

	ctx, endParent := StartSpan(context.Background(), "parent")
	_, endChild := StartSpan(ctx, "child")
	endChild(nil)
	endParent(nil)

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	child, parent := spans[0], spans[1]
	if child.Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Fatal("child span is not parented to the enclosing span")
	}
	if TraceIDFromContext(ctx) != parent.SpanContext().TraceID().String() {
		t.Fatal("TraceIDFromContext() does not match the parent span")
	}
}

func TestDBSystem(t *testing.T) {
	if got := DBSystem(config.DriverSQLite); got != semconv.DBSystemSqlite {
		t.Errorf("DBSystem(sqlite) = %v", got)
	}
	if got := DBSystem(config.DriverPostgres); got != semconv.DBSystemPostgreSQL {
		t.Errorf("DBSystem(pgx) = %v", got)
	}
}

func TestNewTelemetryDisabled(t *testing.T) {
	tel, err := NewTelemetry(context.Background(), &config.Config{
		Otel: config.OtelConfig{Enabled: true},
	})
	if err != nil {
		t.Fatalf("NewTelemetry() error = %v", err)
	}
	if tel.Tracer == nil {
		t.Fatal("Tracer = nil")
	}

	_, span := tel.Tracer.Start(context.Background(), "dropped")
	if span.SpanContext().IsSampled() {
		t.Error("span sampled without an endpoint")
	}
	span.End()

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestNoopTelemetry(t *testing.T) {
	tel := NewNoopTelemetry()
	if tel.Tracer == nil {
		t.Fatal("Tracer = nil")
	}

	_, span := tel.Tracer.Start(context.Background(), "dropped")
	if span.IsRecording() {
		t.Error("noop span is recording")
	}
	span.End()

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}
