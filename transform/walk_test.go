package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/glutils/types"
)

type leaf struct {
	location string
	value    any
}

func collectLeaves(t *testing.T, v any) []leaf {
	t.Helper()

	var out []leaf
	require.NoError(t, WalkLeaves(v, func(value any, location string) error {
		out = append(out, leaf{location: location, value: value})
		return nil
	}))
	return out
}

func TestWalkLeaves_NestedDocument(t *testing.T) {
	doc := types.Document{
		"b": []any{"x", map[string]any{"deep": true}},
		"a": float64(1),
		"c": map[string]any{},
	}

	assert.Equal(t, []leaf{
		{location: "->a", value: float64(1)},
		{location: "->b->0", value: "x"},
		{location: "->b->1->deep", value: true},
	}, collectLeaves(t, doc))
}

func TestWalkLeaves_Records(t *testing.T) {
	recs := types.Records{{"n": 1}, {"n": 2, "m": nil}}

	assert.Equal(t, []leaf{
		{location: "->0->n", value: 1},
		{location: "->1->m", value: nil},
		{location: "->1->n", value: 2},
	}, collectLeaves(t, recs))
}

func TestWalkLeaves_Data(t *testing.T) {
	assert.Equal(t,
		[]leaf{{location: "->k", value: "v"}},
		collectLeaves(t, types.FromDocument(types.Document{"k": "v"})),
	)
}

func TestWalkLeaves_Scalar(t *testing.T) {
	assert.Equal(t, []leaf{{location: "", value: "root"}}, collectLeaves(t, "root"))
}

func TestWalkLeaves_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	visited := 0

	err := WalkLeaves([]any{1, 2, 3}, func(any, string) error {
		visited++
		if visited == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, visited)
}

func TestWalkLeaves_SkipAll(t *testing.T) {
	visited := 0
	err := WalkLeaves([]any{1, 2, 3}, func(any, string) error {
		visited++
		return SkipAll
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, visited)
}
