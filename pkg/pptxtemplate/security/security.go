// Package security validates file paths and containers before they are
// opened or written.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxFileSize is the largest input file accepted by default.
const DefaultMaxFileSize int64 = 100 << 20

// ErrSecurity is the parent of every security check failure.
var ErrSecurity = errors.New("security check failed")

// ErrPathTraversal indicates a path with parent directory components.
var ErrPathTraversal = fmt.Errorf("%w: path traversal", ErrSecurity)

// ErrFileTooLarge indicates an input file above the size limit.
var ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrSecurity)

// ErrExtension indicates a file extension outside the allow-list.
var ErrExtension = errors.New("invalid file extension")

// ValidateInputFile checks that path has no parent directory components,
// exists, has one of the allowed extensions and is at most maxSize bytes
// (DefaultMaxFileSize when maxSize <= 0). It returns the absolute path.
func ValidateInputFile(path string, allowedExts []string, maxSize int64) (string, error) {
	abs, err := validatePath(path, allowedExts)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if info.Size() > maxSize {
		return "", fmt.Errorf("%w: %.2fMB exceeds limit of %.2fMB",
			ErrFileTooLarge, megabytes(info.Size()), megabytes(maxSize))
	}
	return abs, nil
}

// ValidateOutputFile checks path like ValidateInputFile, without requiring
// the file to exist, and creates its parent directory.
func ValidateOutputFile(path string, allowedExts []string) (string, error) {
	abs, err := validatePath(path, allowedExts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("%w: cannot create output directory: %v", ErrSecurity, err)
	}
	return abs, nil
}

func validatePath(path string, allowedExts []string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrSecurity)
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrPathTraversal, path)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: invalid path: %v", ErrSecurity, err)
	}
	if len(allowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(abs))
		if !slices.Contains(allowedExts, ext) {
			return "", fmt.Errorf("%w: %q (allowed: %s)", ErrExtension, ext, strings.Join(allowedExts, ", "))
		}
	}
	return abs, nil
}

func megabytes(n int64) float64 {
	return float64(n) / (1 << 20)
}
