package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed themes/*.yaml
var presets embed.FS

const presetExt = ".yaml"

type builtin struct{}

// Builtin serves the presets compiled into the binary.
var Builtin Store = builtin{}

func (builtin) Theme(name string) ([]byte, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	data, err := presets.ReadFile(path.Join("themes", name+presetExt))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return data, nil
}

// Load reads a built-in preset.
func Load(name string) ([]byte, error) {
	return Builtin.Theme(name)
}

// Names lists the built-in presets in alphabetical order.
func Names() []string {
	matches, err := fs.Glob(presets, "themes/*"+presetExt)
	if err != nil {
		return nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(path.Base(m), presetExt)
	}
	slices.Sort(names)
	return names
}
