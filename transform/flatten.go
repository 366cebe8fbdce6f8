package transform

import (
	"fmt"
	"sort"

	"github.com/BaSui01/glutils/types"
)

// Default field names used by Flatten.
const (
	DefaultCategoryField = "category"
	DefaultValueField    = "value"
)

// Group is one category and its values, in order.
type Group struct {
	Key    string
	Values []any
}

type flattenOptions struct {
	categoryField string
	valueField    string
}

// FlattenOption customizes the field names Flatten emits.
type FlattenOption func(*flattenOptions)

// WithCategoryField sets the key holding the category name.
func WithCategoryField(name string) FlattenOption {
	return func(o *flattenOptions) { o.categoryField = name }
}

// WithValueField sets the key holding the value.
func WithValueField(name string) FlattenOption {
	return func(o *flattenOptions) { o.valueField = name }
}

// Flatten turns grouped values into one row per (category, value) pair.
//
//	Flatten([]Group{{"a", []any{1, 2}}, {"b", []any{3}}})
//	// [{category: a, value: 1}, {category: a, value: 2}, {category: b, value: 3}]
//
// Group order and value order are preserved.
func Flatten(groups []Group, opts ...FlattenOption) types.Records {
	o := flattenOptions{
		categoryField: DefaultCategoryField,
		valueField:    DefaultValueField,
	}
	for _, opt := range opts {
		opt(&o)
	}

	size := 0
	for _, g := range groups {
		size += len(g.Values)
	}

	out := make(types.Records, 0, size)
	for _, g := range groups {
		for _, v := range g.Values {
			out = append(out, types.Row{o.categoryField: g.Key, o.valueField: v})
		}
	}
	return out
}

// FlattenMap is Flatten over a map, visiting categories in sorted key order.
func FlattenMap(m map[string][]any, opts ...FlattenOption) types.Records {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Values: m[k]})
	}
	return Flatten(groups, opts...)
}

// GroupsFromDocument converts a loaded Document whose values are all JSON
// arrays into groups sorted by key.
func GroupsFromDocument(doc types.Document) ([]Group, error) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		values, ok := doc[k].([]any)
		if !ok {
			return nil, types.NewError(types.ErrInvalidArgument,
				fmt.Sprintf("value of %q is %T, expected an array", k, doc[k]))
		}
		groups = append(groups, Group{Key: k, Values: values})
	}
	return groups, nil
}
