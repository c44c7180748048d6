package output

import (
	"io"

	"github.com/goccy/go-yaml"
)

// YAMLFormatter writes values as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes v as YAML.
func (f *YAMLFormatter) Format(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
