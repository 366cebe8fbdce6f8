// Package glutils is the top-level convenience entry point for loading and
// writing record files with default settings.
//
//	data, err := glutils.Load(ctx, "shards/")
//	recs, err := glutils.LoadRecords(ctx, "train.jsonl")
//	err = glutils.Write(ctx, data, "out/merged.json")
//
// These helpers log through zap.L() and record spans on the global otel
// provider. Use the loader package directly for custom configuration.
package glutils

import (
	"context"

	"github.com/BaSui01/glutils/loader"
	"github.com/BaSui01/glutils/types"
)

// Load reads path with the default loader. See loader.Loader.Load.
func Load(ctx context.Context, path string) (types.Data, error) {
	return loader.Default().Load(ctx, path)
}

// Write writes data to path with the default loader. See loader.Loader.Write.
func Write(ctx context.Context, data types.Data, path string) error {
	return loader.Default().Write(ctx, data, path)
}

// LoadRecords loads path and requires the result to be Records.
func LoadRecords(ctx context.Context, path string) (types.Records, error) {
	data, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	recs, ok := data.Records()
	if !ok {
		return nil, types.NewError(types.ErrShapeMismatch, "expected records, got "+data.Kind().String()).WithPath(path)
	}
	return recs, nil
}

// LoadDocument loads path and requires the result to be a Document.
func LoadDocument(ctx context.Context, path string) (types.Document, error) {
	data, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, ok := data.Document()
	if !ok {
		return nil, types.NewError(types.ErrShapeMismatch, "expected document, got "+data.Kind().String()).WithPath(path)
	}
	return doc, nil
}

// WriteRecords writes recs to path.
func WriteRecords(ctx context.Context, recs types.Records, path string) error {
	return Write(ctx, types.FromRecords(recs), path)
}

// WriteDocument writes doc to path.
func WriteDocument(ctx context.Context, doc types.Document, path string) error {
	return Write(ctx, types.FromDocument(doc), path)
}
