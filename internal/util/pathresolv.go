//
// corvid - chess engine core in Go
//

package util

import (
	"errors"
	"os"
	"path/filepath"
)

// ResolveFile tries to find the given file path. An absolute path is
// returned as is (cleaned) if it exists. A relative path is resolved
// against the current working directory first and then against each
// parent directory upwards, so tests and tools started from a package
// directory still find files kept at the module root (e.g. the config
// file). Returns the resolved path or an error if no candidate exists.
func ResolveFile(file string) (string, error) {
	file = filepath.Clean(file)

	if filepath.IsAbs(file) {
		if _, err := os.Stat(file); err != nil {
			return file, err
		}
		return file, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return file, err
	}
	for {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return file, errors.New("file not found: " + file)
}

// ResolveCreateFolder resolves a folder path the same way ResolveFile
// resolves a file. If the folder is not found anywhere up the directory
// tree it is created below the system temp directory instead, so callers
// that just need a writable location (e.g. log folders) always get one.
func ResolveCreateFolder(folder string) (string, error) {
	resolved, err := ResolveFile(folder)
	if err == nil {
		return resolved, nil
	}
	created := filepath.Join(os.TempDir(), filepath.Base(filepath.Clean(folder)))
	if err := os.MkdirAll(created, 0755); err != nil {
		return created, err
	}
	return created, nil
}
