package output

import (
	"fmt"
	"io"
)

// Formatter renders a value to its writer in one format.
type Formatter interface {
	Format(v any) error
}

// New returns a formatter for the given format name.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(w, true), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: json, yaml)", format)
	}
}
