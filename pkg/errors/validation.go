package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxBatchCount bounds a single batch so a typo cannot fill the disk.
const MaxBatchCount = 10000

// ValidateCount validates the number of bugs requested for one run.
func ValidateCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "count must be at least 1, got %d", n)
	}
	if n > MaxBatchCount {
		return New(ErrCodeInvalidInput, "count too large (max %d), got %d", MaxBatchCount, n)
	}
	return nil
}

// ValidateScale validates a rasterization scale factor.
func ValidateScale(s float64) error {
	if s <= 0 {
		return New(ErrCodeInvalidInput, "scale must be positive, got %g", s)
	}
	if s > 16 {
		return New(ErrCodeInvalidInput, "scale too large (max 16), got %g", s)
	}
	return nil
}

// validFormats is the set of supported export formats.
var validFormats = map[string]bool{"png": true, "pdf": true, "svg": true}

// ValidateFormat checks that an export format is supported.
func ValidateFormat(format string) error {
	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'png', 'pdf', or 'svg')", format)
	}
	return nil
}

// ValidateOutputPath validates a user supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidInput, "output path must name a file, got directory %q", path)
	}

	return nil
}
