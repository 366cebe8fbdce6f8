// Package loader reads and writes record files, choosing the format from the
// path's extension.
//
// Supported formats out of the box:
//   - JSON (.json): an object loads as a Document, an array as Records;
//     written 4-space indented
//   - JSONL (.jsonl): one object per line, loads and writes Records
//   - CSV (.csv): header row plus data rows, load only, with per-column
//     type inference
//
// A directory loads as the aggregate of its entries, shaped by the first
// entry: Records are concatenated, Documents merged.
//
//	l := loader.Default()
//	data, err := l.Load(ctx, "/path/to/shards")
//	err = l.Write(ctx, data, "/path/to/out.jsonl")
//
// Extra formats can be registered for any extension:
//
//	l.Registry().Register(".tsv", loader.NewCSVFormat(loader.CSVConfig{Delimiter: "\t", InferTypes: true}))
package loader
