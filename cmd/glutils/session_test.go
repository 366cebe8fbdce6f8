package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/BaSui01/glutils/loader"
)

func TestNewSession_LoaderFailureShutsDownTelemetry(t *testing.T) {
	origTP, origMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	origNewLoader, origTimeout := newLoader, shutdownTimeout
	t.Cleanup(func() {
		otel.SetTracerProvider(origTP)
		otel.SetMeterProvider(origMP)
		newLoader, shutdownTimeout = origNewLoader, origTimeout
	})

	newLoader = func(loader.Config, ...loader.Option) (*loader.Loader, error) {
		return nil, errors.New("loader unavailable")
	}
	shutdownTimeout = 500 * time.Millisecond

	t.Setenv("GLUTILS_LOG_LEVEL", "error")
	t.Setenv("GLUTILS_TELEMETRY_ENABLED", "true")

	s, err := newSession("")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "loader unavailable")

	tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok, "telemetry should have installed an SDK tracer provider")

	_, span := tp.Tracer("after-failure").Start(context.Background(), "after-shutdown")
	defer span.End()
	assert.False(t, span.IsRecording(), "tracer provider should be shut down")
}

func TestNewSession_WiresMeterProvider(t *testing.T) {
	t.Setenv("GLUTILS_LOG_LEVEL", "error")

	s, err := newSession("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.NotNil(t, s.loader)
	assert.NotNil(t, s.providers.MeterProvider())
}
