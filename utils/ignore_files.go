package utils

import (
	"path/filepath"
	"strings"
)

// IsIgnoredDir reports whether a directory name matches one of the ignore patterns.
// Patterns are either exact names or globs such as "*.egg-info".
func IsIgnoredDir(name string, patterns []string) bool {
	name = strings.ToLower(name)
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSuffix(pattern, "/"))
		if pattern == "" {
			continue
		}
		if strings.ContainsAny(pattern, "*?[") {
			if match, _ := filepath.Match(pattern, name); match {
				return true
			}
			continue
		}
		if name == pattern {
			return true
		}
	}
	return false
}

// IsExcludedFile reports whether name is in the excluded file list.
func IsExcludedFile(name string, excluded []string) bool {
	for _, ex := range excluded {
		if name == ex {
			return true
		}
	}
	return false
}
