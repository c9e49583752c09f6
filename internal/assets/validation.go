package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds names used to build file paths.
const maxAssetNameLength = 64

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty, too long, or contains
// path separators, dots (which could allow extension manipulation), or NUL.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
