package loader

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation and status values of the otel measurement attributes.
const (
	opLoad  = "load"
	opWrite = "write"

	statusOK    = "ok"
	statusError = "error"
)

// meters holds the otel instruments recorded for every file operation.
type meters struct {
	operations metric.Int64Counter
	rows       metric.Int64Counter
	duration   metric.Float64Histogram
}

func newMeters(mp metric.MeterProvider) (*meters, error) {
	meter := mp.Meter(instrumentationName)

	operations, err := meter.Int64Counter("glutils.operations",
		metric.WithDescription("File loads and writes"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, fmt.Errorf("create operations counter: %w", err)
	}

	rows, err := meter.Int64Counter("glutils.rows",
		metric.WithDescription("Rows or document keys moved by successful operations"),
		metric.WithUnit("{row}"))
	if err != nil {
		return nil, fmt.Errorf("create rows counter: %w", err)
	}

	duration, err := meter.Float64Histogram("glutils.operation.duration",
		metric.WithDescription("File operation duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &meters{operations: operations, rows: rows, duration: duration}, nil
}

func (m *meters) record(ctx context.Context, op, format string, rows int, duration time.Duration, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	base := metric.WithAttributes(
		attribute.String("glutils.op", op),
		attribute.String("glutils.format", format),
	)

	m.operations.Add(ctx, 1, base, metric.WithAttributes(attribute.String("glutils.status", status)))
	m.duration.Record(ctx, duration.Seconds(), base)
	if err == nil {
		m.rows.Add(ctx, int64(rows), base)
	}
}
