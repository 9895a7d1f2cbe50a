package serializer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	cerrors "github.com/cortana-monitor/cortana/pkg/errors"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// AtomicFileWriter replaces a file so that readers see either the previous
// document or the new one, never a partial write. The document goes to a
// temp file in the target directory, is synced, then renamed over the target.
type AtomicFileWriter struct {
	Path   string
	Format Format

	// beforeRename runs after the temp file is complete. Tests use it to
	// simulate a crash between write and rename.
	beforeRename func(tmp string) error
}

// NewAtomicFileWriter returns a writer for path.
func NewAtomicFileWriter(path string, format Format) *AtomicFileWriter {
	return &AtomicFileWriter{
		Path:   path,
		Format: normalize(format),
	}
}

// Serialize publishes snapshot at w.Path. Failures are INTERNAL errors and
// leave any previous document untouched. A done context does not stop the
// publish of a finished document.
func (w *AtomicFileWriter) Serialize(_ context.Context, snapshot any) error {
	b, err := Marshal(w.Format, snapshot)
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInternal, "failed to encode snapshot", err)
	}

	if err := w.write(b); err != nil {
		return err
	}

	slog.Debug("snapshot published", slog.String("path", w.Path), slog.Int("bytes", len(b)))
	return nil
}

func (w *AtomicFileWriter) write(b []byte) (err error) {
	meta := map[string]any{"path": w.Path}
	fail := func(msg string, cause error) error {
		return cerrors.WrapWithContext(cerrors.ErrCodeInternal, msg, cause, meta)
	}

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fail("failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".*.tmp")
	if err != nil {
		return fail("failed to create temp file", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				slog.Warn("failed to remove temp file", slog.String("path", tmpName), slog.String("error", rmErr.Error()))
			}
		}
	}()

	if _, err = tmp.Write(b); err != nil {
		return fail("failed to write temp file", err)
	}
	if err = tmp.Sync(); err != nil {
		return fail("failed to sync temp file", err)
	}
	if err = tmp.Close(); err != nil {
		return fail("failed to close temp file", err)
	}
	if err = os.Chmod(tmpName, fileMode); err != nil {
		return fail("failed to set file mode", err)
	}

	if w.beforeRename != nil {
		if err = w.beforeRename(tmpName); err != nil {
			return fail("publish interrupted", err)
		}
	}

	if err = os.Rename(tmpName, w.Path); err != nil {
		return fail("failed to replace output file", err)
	}
	return nil
}
