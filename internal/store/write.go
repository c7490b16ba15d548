package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes data to path atomically: the content goes to a
// temporary file next to path which is then renamed over it. Either the
// whole file is replaced or path is left as it was.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "open tmp")
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "write tmp")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "sync tmp")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "close tmp")
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "chmod tmp")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "rename tmp")
	}
	return nil
}
