package loader

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/glutils/internal/ctxkeys"
	"github.com/BaSui01/glutils/types"
)

const instrumentationName = "github.com/BaSui01/glutils/loader"

// formatDir labels directory aggregation in metrics and spans.
const formatDir = "dir"

// Recorder receives one observation per file operation.
type Recorder interface {
	RecordLoad(format string, rows int, duration time.Duration, err error)
	RecordWrite(format string, rows int, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordLoad(string, int, time.Duration, error)  {}
func (nopRecorder) RecordWrite(string, int, time.Duration, error) {}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for progress notices.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(l *Loader) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
// Defaults to the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(l *Loader) {
		if tp != nil {
			l.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithMeterProvider sets the provider otel instruments are created from.
// Defaults to the global otel provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(l *Loader) {
		if mp != nil {
			l.meterProvider = mp
		}
	}
}

// WithRegistry replaces the built-in format registry.
func WithRegistry(r *Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// Loader loads and writes files, choosing the format from the path's
// extension. Directories load as the aggregate of their entries.
type Loader struct {
	registry       *Registry
	logger         *zap.Logger
	recorder       Recorder
	tracer         trace.Tracer
	meterProvider  metric.MeterProvider
	meters         *meters
	dirConcurrency int
}

// New creates a Loader for cfg.
func New(cfg Config, opts ...Option) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Loader{
		registry:       NewRegistry(cfg),
		logger:         zap.NewNop(),
		recorder:       nopRecorder{},
		tracer:         otel.Tracer(instrumentationName),
		meterProvider:  otel.GetMeterProvider(),
		dirConcurrency: cfg.DirConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}

	m, err := newMeters(l.meterProvider)
	if err != nil {
		return nil, err
	}
	l.meters = m
	l.logger = l.logger.With(zap.String("component", "loader"))
	return l, nil
}

// Default returns a Loader with DefaultConfig that logs to zap.L().
func Default() *Loader {
	l, err := New(DefaultConfig(), WithLogger(zap.L()))
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return l
}

// Registry returns the format registry, for registering extra formats.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load reads path. A registered extension selects its format; otherwise an
// existing directory is aggregated; anything else is UNKNOWN_FORMAT.
func (l *Loader) Load(ctx context.Context, path string) (types.Data, error) {
	l.logger.Info("loading", pathFields(ctx, path)...)

	if err := ctx.Err(); err != nil {
		return types.Data{}, err
	}

	ctx, span := l.tracer.Start(ctx, "glutils.load",
		trace.WithAttributes(spanAttributes(ctx, path)...))
	defer span.End()

	start := time.Now()
	data, format, err := l.load(ctx, path)
	elapsed := time.Since(start)
	l.recorder.RecordLoad(format, data.Len(), elapsed, err)
	l.meters.record(ctx, opLoad, format, data.Len(), elapsed, err)

	span.SetAttributes(
		attribute.String("glutils.format", format),
		attribute.String("glutils.shape", data.Kind().String()),
		attribute.Int("glutils.size", data.Len()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return types.Data{}, err
	}
	return data, nil
}

func (l *Loader) load(ctx context.Context, path string) (types.Data, string, error) {
	if fl, ok := l.registry.LoaderFor(path); ok {
		data, err := fl.Load(ctx, path)
		return data, l.registry.formatLabel(path), err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		data, err := l.loadDir(ctx, path)
		return data, formatDir, err
	}

	return types.Data{}, formatUnknown, types.NewUnknownFormatError(path)
}

// Write persists data to path, creating missing parent directories once the
// data has been validated and encoded.
func (l *Loader) Write(ctx context.Context, data types.Data, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format := l.registry.formatLabel(path)
	ctx, span := l.tracer.Start(ctx, "glutils.write",
		trace.WithAttributes(append(spanAttributes(ctx, path),
			attribute.String("glutils.format", format),
			attribute.String("glutils.shape", data.Kind().String()),
		)...))
	defer span.End()

	start := time.Now()
	err := l.write(ctx, data, path)
	elapsed := time.Since(start)
	l.recorder.RecordWrite(format, data.Len(), elapsed, err)
	l.meters.record(ctx, opWrite, format, data.Len(), elapsed, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	l.logger.Debug("written", append(pathFields(ctx, path),
		zap.Stringer("shape", data.Kind()),
		zap.Int("size", data.Len()),
	)...)
	return nil
}

func (l *Loader) write(ctx context.Context, data types.Data, path string) error {
	if data.IsZero() {
		return types.NewError(types.ErrInvalidArgument, "no data to write").WithPath(path)
	}

	w, ok := l.registry.WriterFor(path)
	if !ok {
		return types.NewUnknownFormatError(path)
	}
	return w.Write(ctx, data, path)
}

// ContextWithRunID tags ctx so every log line and span produced under it
// carries runID.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return ctxkeys.WithRunID(ctx, runID)
}

// pathFields returns the log fields naming path and the caller's run.
func pathFields(ctx context.Context, path string) []zap.Field {
	fields := []zap.Field{zap.String("path", path)}
	if id, ok := ctxkeys.RunID(ctx); ok {
		fields = append(fields, zap.String("run_id", id))
	}
	return fields
}

func spanAttributes(ctx context.Context, path string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("glutils.path", path)}
	if id, ok := ctxkeys.RunID(ctx); ok {
		attrs = append(attrs, attribute.String("glutils.run_id", id))
	}
	return attrs
}

// Convert loads src and writes the result to dst.
func (l *Loader) Convert(ctx context.Context, src, dst string) (types.Data, error) {
	data, err := l.Load(ctx, src)
	if err != nil {
		return types.Data{}, err
	}
	if err := l.Write(ctx, data, dst); err != nil {
		return types.Data{}, err
	}
	return data, nil
}
