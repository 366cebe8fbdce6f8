package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var collectorNamespaceSeq uint64

func nextTestNamespace() string {
	seq := atomic.AddUint64(&collectorNamespaceSeq, 1)
	return fmt.Sprintf("test_%d", seq)
}

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestNewCollector(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.loadsTotal)
	assert.NotNil(t, collector.writesTotal)
	assert.NotNil(t, collector.rowsTotal)
	assert.NotNil(t, collector.operationDuration)
}

func TestNewCollector_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector(nextTestNamespace(), nil)
	})
}

func TestCollector_RecordLoad(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordLoad("jsonl", 3, 10*time.Millisecond, nil)
	collector.RecordLoad("jsonl", 2, 5*time.Millisecond, nil)
	collector.RecordLoad("csv", 0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.loadsTotal.WithLabelValues("jsonl", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.loadsTotal.WithLabelValues("csv", StatusError)))
	assert.Equal(t, 5.0, testutil.ToFloat64(collector.rowsTotal.WithLabelValues("jsonl", OpLoad)))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.rowsTotal.WithLabelValues("csv", OpLoad)))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.operationDuration))
}

func TestCollector_RecordWrite(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordWrite("json", 4, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.writesTotal.WithLabelValues("json", StatusOK)))
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.rowsTotal.WithLabelValues("json", OpWrite)))
}

func TestCollector_NilReceiver(t *testing.T) {
	var collector *Collector

	assert.NotPanics(t, func() {
		collector.RecordLoad("json", 1, time.Millisecond, nil)
		collector.RecordWrite("json", 1, time.Millisecond, nil)
	})
}

func TestWriteTextfile(t *testing.T) {
	ns := nextTestNamespace()
	collector := NewCollector(ns, zap.NewNop())
	collector.RecordLoad("json", 1, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "glutils.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), ns+"_loads_total")
}
