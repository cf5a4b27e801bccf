package utils

import (
	"path/filepath"
	"strings"
)

// Default eligibility policy: which directories are never descended into,
// which files are never summarized, and which extensions are considered
// source text worth sending to the oracle.
var (
	defaultExcludedDirs = []string{
		"migrations",
		"static",
		"media",
		"__pycache__",
		".git",
		".svn",
		".idea",
		".vscode",
		".cache",
		"venv",
		"node_modules",
		"bin",
		"obj",
		"dist",
		"out",
	}

	defaultExcludedFiles = []string{
		"manage.py",
		"wsgi.py",
		"asgi.py",
		"package-lock.json",
		"go.sum",
	}

	defaultValidExtensions = []string{
		".py", ".js", ".ts", ".go", ".html", ".json", ".md",
	}
)

// ScanPolicy decides which directories and files are eligible for
// summarization. The same policy drives both file discovery and the
// repository map, so the two stay consistent.
type ScanPolicy struct {
	excludedDirs    map[string]struct{}
	excludedFiles   map[string]struct{}
	validExtensions map[string]struct{}
}

// NewScanPolicy builds a policy from configured lists; any empty list falls
// back to the defaults above.
func NewScanPolicy(excludedDirs, excludedFiles, validExtensions []string) *ScanPolicy {
	if len(excludedDirs) == 0 {
		excludedDirs = defaultExcludedDirs
	}
	if len(excludedFiles) == 0 {
		excludedFiles = defaultExcludedFiles
	}
	if len(validExtensions) == 0 {
		validExtensions = defaultValidExtensions
	}

	return &ScanPolicy{
		excludedDirs:    toLowerSet(excludedDirs),
		excludedFiles:   toLowerSet(excludedFiles),
		validExtensions: toLowerSet(validExtensions),
	}
}

// DefaultScanPolicy returns the built-in eligibility policy.
func DefaultScanPolicy() *ScanPolicy {
	return NewScanPolicy(nil, nil, nil)
}

// IsExcludedDir reports whether a directory name should not be descended into.
func (p *ScanPolicy) IsExcludedDir(name string) bool {
	_, excluded := p.excludedDirs[strings.ToLower(name)]
	return excluded
}

// ValidSourceFile reports whether a file is eligible for summarization based
// on its extension and name.
func (p *ScanPolicy) ValidSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.ToLower(filepath.Base(path))

	if _, excluded := p.excludedFiles[name]; excluded {
		return false
	}
	_, valid := p.validExtensions[ext]
	return valid
}

func toLowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
