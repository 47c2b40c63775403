package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// SanitizeFileName reduces a caller-supplied name to its base name and rejects
// traversal patterns. The result is safe to use as a file-name component, not
// as a path.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "\\", "/")
	s = filepath.Base(s)
	if s == "" || s == "." || s == "/" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
