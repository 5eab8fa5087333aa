package errors

import (
	"strings"
	"unicode"
)

// ValidateExporterName validates an exporter identifier from configuration.
// Names are short lowercase words ("csv", "ucd", "geojson", "mongo"); this
// guards against obviously malformed configuration before the registry
// lookup produces its own EXPORTER_NOT_FOUND.
func ValidateExporterName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFormat, "exporter name cannot be empty")
	}
	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidFormat, "invalid exporter name: %q", name)
		}
	}
	return nil
}

// ValidateSavePath validates an output directory path from configuration.
// It rejects values that could escape the intended output location.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateSavePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "save path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "save path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "save path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "save path cannot contain path traversal sequences (..)")
	}

	return nil
}
