package types

import (
	"fmt"
	"maps"
)

// Row is a single key/value mapping with string keys.
type Row = map[string]any

// Records is an ordered sequence of rows. JSON arrays, JSONL and CSV files
// all load as Records.
type Records []Row

// Document is a single key/value mapping. Plain JSON objects load as a Document.
type Document map[string]any

// Kind identifies which variant a Data value holds.
type Kind int

const (
	// KindNone is the zero Data; it carries nothing.
	KindNone Kind = iota
	KindRecords
	KindDocument
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindRecords:
		return "records"
	case KindDocument:
		return "document"
	default:
		return "none"
	}
}

// Data is the result of loading a path: either Records or a Document,
// never both. Callers branch on Kind or use Match.
type Data struct {
	kind     Kind
	records  Records
	document Document
}

// FromRecords wraps r as Data.
func FromRecords(r Records) Data {
	return Data{kind: KindRecords, records: r}
}

// FromDocument wraps d as Data.
func FromDocument(d Document) Data {
	return Data{kind: KindDocument, document: d}
}

// Kind returns the held variant.
func (d Data) Kind() Kind { return d.kind }

// IsZero reports whether d holds no variant.
func (d Data) IsZero() bool { return d.kind == KindNone }

// Records returns the held Records and true, or nil and false.
func (d Data) Records() (Records, bool) {
	if d.kind != KindRecords {
		return nil, false
	}
	return d.records, true
}

// Document returns the held Document and true, or nil and false.
func (d Data) Document() (Document, bool) {
	if d.kind != KindDocument {
		return nil, false
	}
	return d.document, true
}

// Len returns the number of rows or keys.
func (d Data) Len() int {
	switch d.kind {
	case KindRecords:
		return len(d.records)
	case KindDocument:
		return len(d.document)
	default:
		return 0
	}
}

// Value returns the held variant as a plain value suitable for encoding.
// Nil Records are returned as an empty slice.
func (d Data) Value() any {
	switch d.kind {
	case KindRecords:
		if d.records == nil {
			return Records{}
		}
		return d.records
	case KindDocument:
		if d.document == nil {
			return Document{}
		}
		return d.document
	default:
		return nil
	}
}

// Match calls exactly one of the two arms depending on the held variant.
func (d Data) Match(onRecords func(Records) error, onDocument func(Document) error) error {
	switch d.kind {
	case KindRecords:
		return onRecords(d.records)
	case KindDocument:
		return onDocument(d.document)
	default:
		return NewError(ErrInvalidArgument, "empty data")
	}
}

// Concat aggregates parts into one Data whose shape is decided by the first
// part. Records are concatenated in order; Documents are merged with later
// keys overwriting earlier ones. Inputs are not modified. A part of a
// different shape is a SHAPE_MISMATCH; no parts at all is INVALID_ARGUMENT.
func Concat(parts ...Data) (Data, error) {
	if len(parts) == 0 {
		return Data{}, NewError(ErrInvalidArgument, "nothing to concatenate")
	}

	first := parts[0].kind
	size := 0
	for i, p := range parts {
		if p.kind != first {
			return Data{}, NewError(ErrShapeMismatch,
				fmt.Sprintf("part %d is %s, expected %s", i, p.kind, first))
		}
		size += p.Len()
	}

	switch first {
	case KindRecords:
		out := make(Records, 0, size)
		for _, p := range parts {
			out = append(out, p.records...)
		}
		return FromRecords(out), nil
	case KindDocument:
		out := make(Document, size)
		for _, p := range parts {
			maps.Copy(out, p.document)
		}
		return FromDocument(out), nil
	default:
		return Data{}, NewError(ErrInvalidArgument, "empty data")
	}
}
