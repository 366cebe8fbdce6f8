package loader

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BaSui01/glutils/types"
)

// FormatLoader reads one file of a single format.
type FormatLoader interface {
	// Load reads the file at path and returns its contents.
	Load(ctx context.Context, path string) (types.Data, error)

	// SupportedTypes returns the file extensions this loader handles (e.g. ".json").
	SupportedTypes() []string
}

// FormatWriter persists data to one file of a single format.
type FormatWriter interface {
	// Write serializes data to path, creating missing parent directories.
	// A write that fails validation or encoding leaves the filesystem
	// untouched; WriteFile provides that behavior.
	Write(ctx context.Context, data types.Data, path string) error

	// SupportedTypes returns the file extensions this writer handles.
	SupportedTypes() []string
}

// Registry routes paths to the FormatLoader or FormatWriter registered for
// their extension.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]FormatLoader // extension (lowercase, with dot) -> loader
	writers map[string]FormatWriter
}

// NewRegistry creates a registry pre-populated with the built-in formats:
// .json and .jsonl for reading and writing, .csv for reading only.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{
		loaders: make(map[string]FormatLoader),
		writers: make(map[string]FormatWriter),
	}

	jsonFormat := NewJSONFormat()
	jsonlFormat := NewJSONLFormat(cfg.MaxLineBytes)

	for _, l := range []FormatLoader{jsonFormat, jsonlFormat, NewCSVFormat(cfg.CSV)} {
		for _, ext := range l.SupportedTypes() {
			r.loaders[strings.ToLower(ext)] = l
		}
	}
	for _, w := range []FormatWriter{jsonFormat, jsonlFormat} {
		for _, ext := range w.SupportedTypes() {
			r.writers[strings.ToLower(ext)] = w
		}
	}

	return r
}

// Register adds or replaces a loader for the given file extension.
// ext should include the leading dot (e.g. ".tsv").
func (r *Registry) Register(ext string, loader FormatLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[strings.ToLower(ext)] = loader
}

// RegisterWriter adds or replaces a writer for the given file extension.
func (r *Registry) RegisterWriter(ext string, writer FormatWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writers[strings.ToLower(ext)] = writer
}

// LoaderFor returns the loader registered for path's extension.
func (r *Registry) LoaderFor(path string) (FormatLoader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loaders[extOf(path)]
	return l, ok
}

// WriterFor returns the writer registered for path's extension.
func (r *Registry) WriterFor(path string) (FormatWriter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.writers[extOf(path)]
	return w, ok
}

// SupportedTypes returns all extensions that can be loaded, sorted.
func (r *Registry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.loaders)
}

// WritableTypes returns all extensions that can be written, sorted.
func (r *Registry) WritableTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.writers)
}

func sortedKeys[V any](m map[string]V) []string {
	exts := make([]string, 0, len(m))
	for ext := range m {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func extOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// formatUnknown labels paths whose extension has no registered format.
const formatUnknown = "unknown"

// formatLabel returns the extension without its dot when a loader or writer
// is registered for it, formatUnknown otherwise. Used as a metric/span label.
func (r *Registry) formatLabel(path string) string {
	ext := extOf(path)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, canLoad := r.loaders[ext]
	_, canWrite := r.writers[ext]
	if !canLoad && !canWrite {
		return formatUnknown
	}
	return strings.TrimPrefix(ext, ".")
}
