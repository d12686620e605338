package assets

import (
	"errors"
	"fmt"
)

// DefaultName is the preset used when no theme is configured.
const DefaultName = "default"

// Store returns the YAML source of a preset by name. A store that does
// not hold the preset returns an error wrapping ErrThemeNotFound.
type Store interface {
	Theme(name string) ([]byte, error)
}

// Stack consults its stores in order. A miss passes to the next store;
// any other failure ends the lookup, so a broken user file never silently
// falls back to a built-in preset.
type Stack []Store

// Theme implements Store.
func (s Stack) Theme(name string) ([]byte, error) {
	for _, st := range s {
		data, err := st.Theme(name)
		if !errors.Is(err, ErrThemeNotFound) {
			return data, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
}

// Open returns the lookup order for a theme directory: dir/themes first
// when dir is set, then the built-in presets.
func Open(dir string) (Stack, error) {
	if dir == "" {
		return Stack{Builtin}, nil
	}
	d, err := OpenDir(dir)
	if err != nil {
		return nil, err
	}
	return Stack{d, Builtin}, nil
}

var _ Store = Stack(nil)
