package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/glutils/types"
)

// loadDir loads every entry of dir and aggregates the results. The first
// entry's shape decides the aggregate: Records are concatenated in directory
// order, Documents are merged with later entries winning on key collisions.
func (l *Loader) loadDir(ctx context.Context, dir string) (types.Data, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.Data{}, types.NewFilesystemError(dir, err)
	}
	if len(entries) == 0 {
		return types.Data{}, types.NewError(types.ErrEmptyDirectory, "directory has no entries").WithPath(dir)
	}

	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = filepath.Join(dir, entry.Name())
	}

	var parts []types.Data
	if l.dirConcurrency > 1 && len(paths) > 1 {
		parts, err = l.loadParallel(ctx, paths)
	} else {
		parts, err = l.loadSequential(ctx, paths)
	}
	if err != nil {
		return types.Data{}, err
	}

	out, err := types.Concat(parts...)
	if err != nil {
		return types.Data{}, err
	}

	l.logger.Debug("directory aggregated",
		zap.String("path", dir),
		zap.Int("entries", len(entries)),
		zap.Stringer("shape", out.Kind()),
		zap.Int("size", out.Len()),
	)
	return out, nil
}

func (l *Loader) loadSequential(ctx context.Context, paths []string) ([]types.Data, error) {
	parts := make([]types.Data, 0, len(paths))
	for _, child := range paths {
		data, err := l.Load(ctx, child)
		if err != nil {
			return nil, err
		}
		if err := checkShape(parts, data, child); err != nil {
			return nil, err
		}
		parts = append(parts, data)
	}
	return parts, nil
}

// loadParallel loads up to dirConcurrency entries at once. Results keep
// directory order; the first failure cancels the rest.
func (l *Loader) loadParallel(ctx context.Context, paths []string) ([]types.Data, error) {
	results := make([]types.Data, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.dirConcurrency)
	for i, child := range paths {
		i, child := i, child
		g.Go(func() error {
			data, err := l.Load(gctx, child)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parts := make([]types.Data, 0, len(results))
	for i, data := range results {
		if err := checkShape(parts, data, paths[i]); err != nil {
			return nil, err
		}
		parts = append(parts, data)
	}
	return parts, nil
}

// checkShape rejects data whose kind differs from the first part.
func checkShape(parts []types.Data, data types.Data, path string) error {
	if len(parts) == 0 || data.Kind() == parts[0].Kind() {
		return nil
	}
	return types.NewError(types.ErrShapeMismatch,
		fmt.Sprintf("entry is %s, directory is %s", data.Kind(), parts[0].Kind())).WithPath(path)
}
