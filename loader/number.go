package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BaSui01/glutils/types"
)

// decodeJSON parses data as exactly one JSON value. Numbers keep their
// exact value: integer literals become int64, other literals float64, and
// literals neither type holds exactly stay json.Number.
func decodeJSON(data []byte) (any, error) {
	if !json.Valid(data) {
		var discard any
		if err := json.Unmarshal(data, &discard); err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return normalizeNumbers(v), nil
}

// decodeObject is decodeJSON for input that must hold a single object.
func decodeObject(data []byte) (map[string]any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(v))
	}
	return obj, nil
}

func normalizeNumbers(v any) any {
	switch node := v.(type) {
	case json.Number:
		return numberValue(node)
	case map[string]any:
		for k, item := range node {
			node[k] = normalizeNumbers(item)
		}
		return node
	case []any:
		for i, item := range node {
			node[i] = normalizeNumbers(item)
		}
		return node
	default:
		return v
	}
}

func numberValue(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return n
	}
	return f
}

// encodable returns v with integral floats spelled with a fraction, so they
// load back as float64 rather than int64.
func encodable(v any) any {
	switch node := v.(type) {
	case float64:
		return floatNumber(node)
	case float32:
		return floatNumber(float64(node))
	case types.Document:
		return encodableMap(node)
	case map[string]any:
		return encodableMap(node)
	case types.Records:
		out := make([]any, len(node))
		for i, row := range node {
			out[i] = encodableMap(row)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, item := range node {
			out[i] = encodable(item)
		}
		return out
	default:
		return v
	}
}

func encodableMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = encodable(item)
	}
	return out
}

// floatNumber leaves NaN and Inf untouched so the encoder rejects them.
func floatNumber(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= 1e21 {
		return f
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64) + ".0")
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
