package utils

import (
	"io/fs"
	"log"
	"path/filepath"
)

// ScanRepo walks root depth-first and returns every eligible file path in
// discovery order. Unreadable subtrees are logged and skipped; sibling
// subtrees still complete.
func (p *ScanPolicy) ScanRepo(root string) []string {
	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && p.IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if p.ValidSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files
}
