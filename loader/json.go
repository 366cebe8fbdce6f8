package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BaSui01/glutils/types"
)

// jsonIndent is the indentation used for pretty-printed .json output.
const jsonIndent = "    "

// JSONFormat reads and writes .json files. An object loads as a Document,
// an array of objects as Records.
type JSONFormat struct{}

// NewJSONFormat creates a JSONFormat.
func NewJSONFormat() *JSONFormat {
	return &JSONFormat{}
}

// Load reads a .json file.
func (f *JSONFormat) Load(ctx context.Context, path string) (types.Data, error) {
	if err := ctx.Err(); err != nil {
		return types.Data{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Data{}, types.NewFilesystemError(path, err)
	}

	v, err := decodeJSON(data)
	if err != nil {
		return types.Data{}, types.NewParseError(path, err)
	}

	switch node := v.(type) {
	case map[string]any:
		return types.FromDocument(node), nil
	case []any:
		records := make(types.Records, 0, len(node))
		for i, item := range node {
			row, ok := item.(map[string]any)
			if !ok {
				return types.Data{}, types.NewParseError(path,
					fmt.Errorf("element %d is %s, expected an object", i, jsonKind(item)))
			}
			records = append(records, row)
		}
		return types.FromRecords(records), nil
	default:
		return types.Data{}, types.NewParseError(path,
			fmt.Errorf("expected a JSON object or array, got %s", jsonKind(v)))
	}
}

// Write serializes either variant as 4-space indented JSON.
func (f *JSONFormat) Write(ctx context.Context, data types.Data, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return WriteFile(path, func(buf *bytes.Buffer) error {
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", jsonIndent)
		return enc.Encode(encodable(data.Value()))
	})
}

// SupportedTypes returns the extensions handled by JSONFormat.
func (f *JSONFormat) SupportedTypes() []string {
	return []string{".json"}
}
