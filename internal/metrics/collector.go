// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Operation labels.
const (
	OpLoad  = "load"
	OpWrite = "write"
)

// Status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 文件读写指标收集器
type Collector struct {
	loadsTotal        *prometheus.CounterVec
	writesTotal       *prometheus.CounterVec
	rowsTotal         *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Total number of file loads",
		},
		[]string{"format", "status"},
	)

	c.writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Total number of file writes",
		},
		[]string{"format", "status"},
	)

	c.rowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Total number of rows or document keys moved",
		},
		[]string{"format", "op"},
	)

	c.operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "File operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"op", "format"},
	)

	c.logger.Debug("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// 🎯 读写指标记录
// =============================================================================

// RecordLoad 记录一次文件加载
func (c *Collector) RecordLoad(format string, rows int, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.loadsTotal.WithLabelValues(format, status(err)).Inc()
	c.operationDuration.WithLabelValues(OpLoad, format).Observe(duration.Seconds())
	if err == nil {
		c.rowsTotal.WithLabelValues(format, OpLoad).Add(float64(rows))
	}
}

// RecordWrite 记录一次文件写入
func (c *Collector) RecordWrite(format string, rows int, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.writesTotal.WithLabelValues(format, status(err)).Inc()
	c.operationDuration.WithLabelValues(OpWrite, format).Observe(duration.Seconds())
	if err == nil {
		c.rowsTotal.WithLabelValues(format, OpWrite).Add(float64(rows))
	}
}

// =============================================================================
// 📤 导出
// =============================================================================

// WriteTextfile 将默认 Registry 的指标写入 node-exporter textfile 格式文件
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// status 将错误转换为状态标签
func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
