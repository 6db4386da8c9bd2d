// Package ignore decides which project paths a force-ignore list excludes.
package ignore

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/fdt/internal/utils"
)

const (
	pathSegmentSeparator = "/"
	negationPrefix       = "!"
	patternSeparator     = "\n"
	matcherBasePath      = "."
)

// Matcher evaluates forward-slash relative paths against force-ignore patterns and exclusion globs.
//
// Force-ignore patterns follow gitignore syntax. A path is excluded when it or one of its parent
// directories matches an ignore pattern, unless a "!" pattern matches the path or one of its
// parents. Exclusion globs use doublestar syntax and match the whole path or a leading directory.
type Matcher struct {
	ignored    gitignore.IgnoreMatcher
	accepted   gitignore.IgnoreMatcher
	exclusions []string
}

// NewMatcher compiles patterns as returned by fileio.Reader.ReadForceIgnore.
func NewMatcher(patterns []string) *Matcher {
	var ignorePatterns []string
	var acceptPatterns []string
	for _, patternValue := range patterns {
		if strings.HasPrefix(patternValue, negationPrefix) {
			acceptPatterns = append(acceptPatterns, strings.TrimPrefix(patternValue, negationPrefix))
			continue
		}
		ignorePatterns = append(ignorePatterns, patternValue)
	}
	return &Matcher{
		ignored:  compilePatterns(ignorePatterns),
		accepted: compilePatterns(acceptPatterns),
	}
}

// Exclude adds doublestar globs, such as those given with -e, and returns the matcher.
// Invalid globs are skipped.
func (matcher *Matcher) Exclude(globs ...string) *Matcher {
	for _, glob := range globs {
		normalizedGlob := strings.TrimSuffix(utils.NormalizeSlashes(glob), pathSegmentSeparator)
		normalizedGlob = strings.TrimPrefix(normalizedGlob, pathSegmentSeparator)
		if normalizedGlob == "" || !doublestar.ValidatePattern(normalizedGlob) {
			continue
		}
		matcher.exclusions = append(matcher.exclusions, normalizedGlob)
	}
	return matcher
}

// Matches reports whether relativePath, a file path relative to the project root, is excluded.
func (matcher *Matcher) Matches(relativePath string) bool {
	normalizedPath := strings.TrimPrefix(utils.NormalizeSlashes(relativePath), pathSegmentSeparator)
	if normalizedPath == "" {
		return false
	}
	candidates := pathCandidates(normalizedPath)
	if matcher.matchesExclusion(candidates) {
		return true
	}
	if matchesAny(matcher.accepted, candidates) {
		return false
	}
	return matchesAny(matcher.ignored, candidates)
}

func (matcher *Matcher) matchesExclusion(candidates []pathCandidate) bool {
	for _, glob := range matcher.exclusions {
		for _, candidate := range candidates {
			isMatched, matchError := doublestar.Match(glob, candidate.path)
			if matchError == nil && isMatched {
				return true
			}
		}
	}
	return false
}

type pathCandidate struct {
	path        string
	isDirectory bool
}

// pathCandidates lists every parent directory of normalizedPath followed by the path itself.
func pathCandidates(normalizedPath string) []pathCandidate {
	pathSegments := strings.Split(normalizedPath, pathSegmentSeparator)
	candidates := make([]pathCandidate, 0, len(pathSegments))
	for segmentIndex := range pathSegments {
		candidates = append(candidates, pathCandidate{
			path:        strings.Join(pathSegments[:segmentIndex+1], pathSegmentSeparator),
			isDirectory: segmentIndex < len(pathSegments)-1,
		})
	}
	return candidates
}

func matchesAny(patternMatcher gitignore.IgnoreMatcher, candidates []pathCandidate) bool {
	if patternMatcher == nil {
		return false
	}
	for _, candidate := range candidates {
		if patternMatcher.Match(candidate.path, candidate.isDirectory) {
			return true
		}
	}
	return false
}

func compilePatterns(patterns []string) gitignore.IgnoreMatcher {
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewGitIgnoreFromReader(matcherBasePath, strings.NewReader(strings.Join(patterns, patternSeparator)))
}
