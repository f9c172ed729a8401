package fileutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FindCompanion returns the file in path's directory that shares path's
// stem and has extension ext. It fails when there is no such file.
func FindCompanion(path, ext string) (string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	result, err := ScanDirectory(dir, ScanOptions{
		Pattern:    "^" + regexp.QuoteMeta(stem) + "$",
		Extensions: []string{ext},
	})
	if err != nil {
		return "", err
	}
	if len(result.Files) == 0 {
		return "", fmt.Errorf("no %s file found next to %s", ext, path)
	}
	return result.Files[0], nil
}
