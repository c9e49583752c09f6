// Package yamlutil decodes the YAML files users write for mdcard (config and
// themes) and encodes themes for "mdcard themes --show". Nothing else in the
// module imports the YAML library.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds accepted files. Real themes and configs are well under 4KB.
var MaxInputSize = 256 << 10

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v and rejects keys v does not declare,
// so a misspelled theme field fails instead of silently keeping its default.
// Keys absent from data leave v's existing values in place.
// Decode errors carry the offending line and column.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, false))
	}
	return nil
}

// Marshal encodes v as block-style YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
