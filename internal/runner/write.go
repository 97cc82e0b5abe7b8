package runner

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/creachadair/atomicfile"
)

// writeFile replaces path with content atomically, keeping the existing
// permission bits.
func writeFile(path, content string) error {
	mode := fs.FileMode(0o644)
	fi, err := os.Stat(path)
	switch {
	case err == nil:
		mode = fi.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	f, err := atomicfile.New(path, mode)
	if err != nil {
		return err
	}
	defer f.Cancel()

	if _, err := io.WriteString(f, content); err != nil {
		return err
	}
	return f.Close()
}
