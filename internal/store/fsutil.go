package store

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// atomicWriteFile writes b next to path under a unique temp name and renames
// it into place, so concurrent CLI and TUI writers never see a torn file.
func atomicWriteFile(fsys afero.Fs, path string, b []byte, perm os.FileMode) error {
	f, err := afero.TempFile(fsys, filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = fsys.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = fsys.Chmod(tmp, perm)
	return fsys.Rename(tmp, path)
}
