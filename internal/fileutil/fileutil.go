// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrIsDirectory is returned by WriteFileAtomic when path names a directory.
var ErrIsDirectory = errors.New("target is a directory")

// WriteFileAtomic replaces path with data. The bytes go to a hidden
// sibling file that is synced and then renamed over path, so readers see
// either the old file or the complete new one. The sibling is removed
// when any step fails.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if DirExists(path) {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReplaceExt swaps the extension of path for ext (including the dot).
//
// Examples:
//   - ("notes.md", ".docx") -> "notes.docx"
//   - ("dir/page.html", ".md") -> "dir/page.md"
//   - ("README", ".docx") -> "README.docx"
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "compact" -> false (name)
//   - "./house.yaml" -> true (relative path)
//   - "../shared/theme.yaml" -> true (parent path)
//   - "/absolute/theme.yaml" -> true (absolute)
//   - "C:\themes\house.yaml" -> true (Windows)
//   - "my-theme" -> false (hyphenated name)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
