package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"migration-scaffold/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		" ERROR ": slog.LevelError,
		"WARN":    slog.LevelWarn,
		"":        slog.LevelWarn,
		"verbose": slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTraceHandler_AddsSpanContext(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{OtelEnabled: true}
	logger := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil), cfg))

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.InfoContext(ctx, "migration file created")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if record["trace_id"] != span.SpanContext().TraceID().String() {
		t.Errorf("expected trace_id %s, got %v", span.SpanContext().TraceID(), record["trace_id"])
	}
	if record["span_id"] != span.SpanContext().SpanID().String() {
		t.Errorf("expected span_id %s, got %v", span.SpanContext().SpanID(), record["span_id"])
	}
}

func TestTraceHandler_DisabledOmitsSpanContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil), &config.Config{}))

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.With("component", "test").InfoContext(ctx, "hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if _, ok := record["trace_id"]; ok {
		t.Error("trace_id must not be added when tracing is disabled")
	}
	if record["component"] != "test" {
		t.Errorf("expected attrs to be preserved, got %v", record["component"])
	}
}

func TestInitTracer_Disabled(t *testing.T) {
	tp, err := InitTracer(context.Background(), &config.Config{OtelEnabled: false}, "test")
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	if tp != nil {
		t.Error("expected nil provider when tracing is disabled")
	}
}
