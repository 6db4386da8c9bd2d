// Package utils contains general helper functions used across the fdt tool.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the forward-slash path of targetPath relative to root.
// A relative targetPath is resolved against root first.
// Returns the cleaned targetPath if relative calculation fails.
// Returns "." if targetPath and root resolve to the same directory.
func RelativePathOrSelf(targetPath, root string) string {
	cleanPath := filepath.Clean(targetPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(cleanPath)
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if !filepath.IsAbs(cleanPath) {
		cleanPath = filepath.Join(cleanAbsoluteRoot, cleanPath)
	}
	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return filepath.ToSlash(filepath.Clean(targetPath))
	}
	return filepath.ToSlash(relativePath)
}

// NormalizeSlashes converts Windows separators to forward slashes and removes a leading "./".
func NormalizeSlashes(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(normalized, "./")
}
