package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// dirExts are tried in order for each lookup.
var dirExts = []string{".yaml", ".yml"}

// Dir serves presets from the themes/ folder of a user directory. Files
// are read through an os.Root, so a symlink cannot reach outside it.
type Dir struct {
	themes string
}

// OpenDir checks that dir is an existing directory. The themes/ folder
// itself is optional: without it every lookup is a miss.
func OpenDir(dir string) (*Dir, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidDir, abs)
	}
	return &Dir{themes: filepath.Join(abs, "themes")}, nil
}

// Theme implements Store.
func (d *Dir) Theme(name string) ([]byte, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(d.themes)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer root.Close()

	for _, ext := range dirExts {
		data, err := root.ReadFile(name + ext)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
}

var _ Store = (*Dir)(nil)
