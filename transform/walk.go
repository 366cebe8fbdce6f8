package transform

import (
	"errors"
	"sort"
	"strconv"

	"github.com/BaSui01/glutils/types"
)

// SkipAll can be returned by a LeafFunc to stop the walk without an error.
var SkipAll = errors.New("skip remaining leaves")

// LeafFunc is called for every leaf. location is the path from the root,
// one "->key" or "->index" segment per level; the root itself is "".
type LeafFunc func(leaf any, location string) error

// WalkLeaves calls fn for every non-container value reachable from v.
// Maps are visited in sorted key order, slices in index order. An error
// from fn stops the walk and is returned, except SkipAll which stops it
// cleanly.
func WalkLeaves(v any, fn LeafFunc) error {
	err := walk(v, "", fn)
	if errors.Is(err, SkipAll) {
		return nil
	}
	return err
}

func walk(v any, location string, fn LeafFunc) error {
	switch node := v.(type) {
	case types.Data:
		return walk(node.Value(), location, fn)
	case types.Document:
		return walkMap(node, location, fn)
	case map[string]any:
		return walkMap(node, location, fn)
	case types.Records:
		for i, row := range node {
			if err := walk(row, location+"->"+strconv.Itoa(i), fn); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range node {
			if err := walk(item, location+"->"+strconv.Itoa(i), fn); err != nil {
				return err
			}
		}
		return nil
	default:
		return fn(v, location)
	}
}

func walkMap(m map[string]any, location string, fn LeafFunc) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := walk(m[k], location+"->"+k, fn); err != nil {
			return err
		}
	}
	return nil
}
