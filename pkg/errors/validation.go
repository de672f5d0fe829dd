package errors

import (
	"os"
	"path/filepath"
	"unicode"
)

const maxPathLength = 4096

// ValidateInputPath checks that path names an existing regular file.
//
// The validation rules are:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 4096 characters
//   - The file must exist and must not be a directory
func ValidateInputPath(path string) error {
	if err := validatePathString(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeFileNotFound, "layout file not found: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is a directory, not a layout file", path)
	}
	return nil
}

// ValidateOutputPath checks that path can name the generated artifact.
// The file itself need not exist, but it must not be a directory and its
// parent directory must exist.
func ValidateOutputPath(path string) error {
	if err := validatePathString(path); err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(ErrCodeInvalidPath, "output %s is a directory", path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return New(ErrCodeInvalidPath, "output directory does not exist: %s", dir)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "output parent %s is not a directory", dir)
	}
	return nil
}

func validatePathString(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
