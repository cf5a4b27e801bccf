package repo_summarizer

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/repoghost/repoghost/repo_summarizer/models"
	"github.com/repoghost/repoghost/utils"
)

// DefaultMaxDepth bounds how deep the repository map descends.
const DefaultMaxDepth = 5

// MapRepository builds a depth-bounded hierarchical view of the repository,
// mirroring the same eligibility policy used for file discovery. Directories
// beyond maxDepth are simply omitted. Unreadable subtrees are logged and
// omitted while their siblings still complete. The map is built fresh every
// run and never cached.
func MapRepository(root string, maxDepth int, policy *utils.ScanPolicy) *models.RepoNode {
	rootNode := &models.RepoNode{
		Name: filepath.Base(root),
		Type: models.NodeTypeDirectory,
		Path: ".",
	}

	traverseRepo(root, root, rootNode, 0, maxDepth, policy)
	return rootNode
}

func traverseRepo(root, current string, node *models.RepoNode, depth, maxDepth int, policy *utils.ScanPolicy) {
	if depth >= maxDepth {
		return
	}

	entries, err := os.ReadDir(current)
	if err != nil {
		log.Printf("Warning: directory traversal error at %s: %v", current, err)
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(current, entry.Name())
		relativePath, err := filepath.Rel(root, entryPath)
		if err != nil {
			continue
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if entry.IsDir() {
			if policy.IsExcludedDir(entry.Name()) {
				continue
			}
			child := &models.RepoNode{
				Name: entry.Name(),
				Type: models.NodeTypeDirectory,
				Path: relativePath,
			}
			node.Children = append(node.Children, child)
			traverseRepo(root, entryPath, child, depth+1, maxDepth, policy)
		} else if policy.ValidSourceFile(entryPath) {
			node.Children = append(node.Children, &models.RepoNode{
				Name: entry.Name(),
				Type: models.NodeTypeFile,
				Path: relativePath,
			})
		}
	}
}
