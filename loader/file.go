package loader

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BaSui01/glutils/internal/pool"
	"github.com/BaSui01/glutils/types"
)

// WriteFile runs encode into a pooled buffer, then creates missing parent
// directories and writes the buffer to path. When encode fails nothing on
// disk is touched and the error is INVALID_ARGUMENT.
func WriteFile(path string, encode func(buf *bytes.Buffer) error) error {
	buf := pool.BufferPool.Get()
	defer pool.BufferPool.Put(buf)

	if err := encode(buf); err != nil {
		return types.NewError(types.ErrInvalidArgument, "encode failed").WithPath(path).WithCause(err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return types.NewFilesystemError(path, err)
	}
	return nil
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.NewFilesystemError(dir, err)
	}
	return nil
}
