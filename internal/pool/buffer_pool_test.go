package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_ReusesAndResets(t *testing.T) {
	p := NewBufferPool(1024)

	buf := p.Get()
	buf.WriteString("hello")
	p.Put(buf)

	got := p.Get()
	assert.Equal(t, 0, got.Len(), "buffers come back reset")

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Gets)
	assert.Equal(t, int64(1), stats.Puts)
	assert.Equal(t, int64(0), stats.Discards)
}

func TestPool_DiscardsOversizedBuffers(t *testing.T) {
	p := NewBufferPool(16)

	buf := p.Get()
	buf.Write(bytes.Repeat([]byte("x"), 8192))
	p.Put(buf)

	assert.Equal(t, int64(1), p.Stats().Discards)
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{name: "no gets", stats: Stats{}, want: 0},
		{name: "all new", stats: Stats{Gets: 4, News: 4}, want: 0},
		{name: "half reused", stats: Stats{Gets: 4, News: 2}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stats.HitRate(), 1e-9)
		})
	}
}
