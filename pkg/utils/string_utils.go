package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonWordRe = regexp.MustCompile(`\W+`)

// SafeBaseName derives a filesystem-safe base name from an uploaded filename:
// the extension is stripped, runs of non-word characters are replaced with an
// underscore, and the result is truncated to maxLen characters.
func SafeBaseName(filename string, maxLen int) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = nonWordRe.ReplaceAllString(base, "_")
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "upload"
	}
	return base
}
