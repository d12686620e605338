// Package yamlutil decodes and encodes the YAML files of go-md2docx:
// CLI configuration and theme presets. Callers never import the YAML
// library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the size of a YAML document. Configuration files and
// themes are a few kilobytes.
var MaxInputSize = 256 << 10

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrDecode         = errors.New("yamlutil: decode failed")
)

// Unmarshal decodes data into v. Keys without a matching field are
// ignored. Fields of v that data does not mention keep their value, so v
// may be pre-filled with defaults.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict is Unmarshal, except that unknown keys are an error.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return &DecodeError{err: err}
	}
	return nil
}

// DecodeError wraps a syntax or schema error from the YAML library.
// It matches ErrDecode with errors.Is.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return "yamlutil: " + yaml.FormatError(e.err, false, false)
}

// Pretty renders the error with the offending source lines, for
// terminal output.
func (e *DecodeError) Pretty(colored bool) string {
	return yaml.FormatError(e.err, colored, true)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// Marshal encodes v with two-space indentation and indented sequences.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
