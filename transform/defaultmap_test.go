package transform

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/glutils/types"
)

func TestDefaultMap_GetCreatesAndStores(t *testing.T) {
	calls := 0
	m := NewDefaultMap(func(k string) []int {
		calls++
		return []int{len(k)}
	})

	v, err := m.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, v)

	v, err = m.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, v)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Len())
}

func TestDefaultMap_NilFactory(t *testing.T) {
	m := NewDefaultMap[string, int](nil)

	_, err := m.Get("missing")
	require.Error(t, err)
	assert.Equal(t, types.ErrKeyNotFound, types.GetErrorCode(err))

	m.Set("present", 7)
	v, err := m.Get("present")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDefaultMap_LookupDoesNotCreate(t *testing.T) {
	m := NewDefaultMap(func(string) int { return 1 })

	_, ok := m.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())

	m.Set("x", 5)
	v, ok := m.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestDefaultMap_DeleteAndKeys(t *testing.T) {
	m := NewDefaultMap(func(k string) string { return k + "!" })
	for _, k := range []string{"b", "a", "c"} {
		_, err := m.Get(k)
		require.NoError(t, err)
	}
	m.Delete("b")

	keys := m.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "c"}, keys)

	v, err := m.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "b!", v)
}

func TestDefaultMap_ConcurrentGetRunsFactoryOnce(t *testing.T) {
	var calls atomic.Int32
	m := NewDefaultMap(func(k int) int {
		calls.Add(1)
		return k * 2
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.Get(21)
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestDefaultMap_FactoryMayGetOtherKeys(t *testing.T) {
	var calls atomic.Int32
	var fib *DefaultMap[int, int64]
	fib = NewDefaultMap(func(n int) int64 {
		calls.Add(1)
		if n < 2 {
			return int64(n)
		}
		a, err := fib.Get(n - 1)
		assert.NoError(t, err)
		b, err := fib.Get(n - 2)
		assert.NoError(t, err)
		return a + b
	})

	result := make(chan int64, 1)
	go func() {
		v, err := fib.Get(50)
		assert.NoError(t, err)
		result <- v
	}()

	select {
	case v := <-result:
		assert.Equal(t, int64(12586269025), v)
	case <-time.After(2 * time.Second):
		t.Fatal("Get with a recursive factory did not return")
	}
	assert.Equal(t, int32(51), calls.Load())
	assert.Equal(t, 51, fib.Len())
}

func TestDefaultMap_PanickingFactoryDoesNotWedgeKey(t *testing.T) {
	fail := true
	m := NewDefaultMap(func(k string) string {
		if fail {
			panic("factory failed")
		}
		return k + "?"
	})

	assert.Panics(t, func() { _, _ = m.Get("k") })
	assert.Equal(t, 0, m.Len())

	fail = false
	v, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "k?", v)
}
