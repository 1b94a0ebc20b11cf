package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), "LOG_LEVEL=%q", raw)
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("SERVICE_VERSION", "1.4.0")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	settings := SettingsFromEnv("eiliyabill-api")
	assert.Equal(t, "eiliyabill-api", settings.ServiceName)
	assert.Equal(t, "1.4.0", settings.Version)
	assert.Equal(t, "local", settings.Environment)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "collector:4318", settings.OTLPEndpoint)
	assert.False(t, settings.OTLPInsecure)
	assert.Equal(t, 0.25, settings.SampleRatio)
}

func TestParseRatioFallsBackToAlways(t *testing.T) {
	for _, raw := range []string{"", "abc", "-0.1", "1.5"} {
		assert.Equal(t, 1.0, parseRatio(raw), raw)
	}
	assert.Equal(t, 0.0, parseRatio("0"))
}

func TestTraceHandlerStampsSpanIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(TraceHandler{Handler: slog.NewJSONHandler(&buf, nil)}).With(slog.String("component", "orders"))

	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	ctx, span := provider.Tracer("test").Start(context.Background(), "commit")
	logger.InfoContext(ctx, "order committed")
	span.End()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), record["span_id"])
	assert.Equal(t, "orders", record["component"])

	buf.Reset()
	logger.Info("no span")
	var plain map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plain))
	_, hasTrace := plain["trace_id"]
	assert.False(t, hasTrace)
}
