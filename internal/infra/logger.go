// Package infra はロガーやトレーサーなど外部との接続を提供する。
package infra

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"migration-scaffold/config"
)

// TraceHandler はトレース情報をログに付与するslogハンドラ。
type TraceHandler struct {
	handler     slog.Handler
	otelEnabled bool
}

// NewTraceHandler はトレース情報付きのslogハンドラを生成する。
func NewTraceHandler(handler slog.Handler, cfg *config.Config) *TraceHandler {
	return &TraceHandler{
		handler:     handler,
		otelEnabled: cfg.OtelEnabled,
	}
}

// Enabled はハンドラがログを処理するかどうかを返す。
func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle はログレコードにスパンのtrace_idとspan_idを付与する。
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.otelEnabled {
		spanCtx := trace.SpanFromContext(ctx).SpanContext()
		if spanCtx.IsValid() {
			r.AddAttrs(
				slog.String("trace_id", spanCtx.TraceID().String()),
				slog.String("span_id", spanCtx.SpanID().String()),
				slog.Bool("trace_sampled", spanCtx.IsSampled()),
			)
		}
	}

	return h.handler.Handle(ctx, r)
}

// WithAttrs は属性を追加した新しいハンドラを返す。
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{
		handler:     h.handler.WithAttrs(attrs),
		otelEnabled: h.otelEnabled,
	}
}

// WithGroup はグループを追加した新しいハンドラを返す。
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{
		handler:     h.handler.WithGroup(name),
		otelEnabled: h.otelEnabled,
	}
}

// ParseLogLevel はLOG_LEVELの値をslog.Levelに変換する。不明な値はWARNとして扱う。
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetupLogger はトレース情報付きのグローバルロガーを設定する。
// CLIの出力と混ざらないよう、ログはwに書き出す（通常はstderr）。
func SetupLogger(cfg *config.Config, w io.Writer) {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLogLevel(cfg.LogLevel)})
	slog.SetDefault(slog.New(NewTraceHandler(jsonHandler, cfg)))
}
