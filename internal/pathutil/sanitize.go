package pathutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/erraggy/oasguard/oaserrors"
)

// ReportFile resolves the destination of a report written with --output.
// The result is absolute. Symlinks and directories are refused, and the
// parent directory must already exist.
func ReportFile(path string) (string, error) {
	if path == "" {
		return "", &oaserrors.ConfigError{Option: "output", Message: "path is empty"}
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", &oaserrors.ConfigError{Option: "output", Value: path, Cause: err}
	}

	info, err := os.Lstat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		dir, statErr := os.Stat(filepath.Dir(abs))
		if statErr != nil || !dir.IsDir() {
			return "", &oaserrors.ConfigError{Option: "output", Value: path, Message: "parent directory does not exist"}
		}
	case err != nil:
		return "", &oaserrors.ConfigError{Option: "output", Value: path, Cause: err}
	case info.Mode()&fs.ModeSymlink != 0:
		return "", &oaserrors.ConfigError{Option: "output", Value: path, Message: "refusing to write through a symlink"}
	case info.IsDir():
		return "", &oaserrors.ConfigError{Option: "output", Value: path, Message: "path is a directory"}
	}
	return abs, nil
}
