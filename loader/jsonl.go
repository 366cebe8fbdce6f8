package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/BaSui01/glutils/types"
)

// JSONLFormat reads and writes newline-delimited JSON: one object per line.
type JSONLFormat struct {
	maxLineBytes int
}

// NewJSONLFormat creates a JSONLFormat. maxLineBytes <= 0 selects DefaultMaxLineBytes.
func NewJSONLFormat(maxLineBytes int) *JSONLFormat {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &JSONLFormat{maxLineBytes: maxLineBytes}
}

// Load reads a .jsonl file. Blank lines are skipped; any malformed line
// fails the whole file.
func (f *JSONLFormat) Load(ctx context.Context, path string) (types.Data, error) {
	if err := ctx.Err(); err != nil {
		return types.Data{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return types.Data{}, types.NewFilesystemError(path, err)
	}
	defer file.Close()

	records := types.Records{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, min(64*1024, f.maxLineBytes)), f.maxLineBytes)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		row, err := decodeObject(line)
		if err != nil {
			return types.Data{}, types.NewParseError(path, err)
		}
		records = append(records, row)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return types.Data{}, types.NewParseError(path, err)
		}
		return types.Data{}, types.NewFilesystemError(path, err)
	}

	return types.FromRecords(records), nil
}

// Write serializes Records one compact object per line. A Document is rejected.
func (f *JSONLFormat) Write(ctx context.Context, data types.Data, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, ok := data.Records()
	if !ok {
		return types.NewError(types.ErrShapeMismatch,
			"jsonl output requires records, got "+data.Kind().String()).WithPath(path)
	}

	return WriteFile(path, func(buf *bytes.Buffer) error {
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		for _, row := range records {
			if err := enc.Encode(encodableMap(row)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SupportedTypes returns the extensions handled by JSONLFormat.
func (f *JSONLFormat) SupportedTypes() []string {
	return []string{".jsonl"}
}
