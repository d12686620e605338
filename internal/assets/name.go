package assets

import (
	"fmt"
	"strings"
)

const maxNameLength = 64

// CheckName rejects names that are not a plain file stem: empty, longer
// than 64 bytes, or containing a separator, a dot or a NUL byte.
func CheckName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, maxNameLength)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
