package localfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Corpus is the local directory holding indexable source documents.
type Corpus struct {
	root string
}

func NewCorpus(root string) (*Corpus, error) {
	if root == "" {
		root = "./data/corpus"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create corpus dir: %w", err)
	}
	return &Corpus{root: root}, nil
}

func (c *Corpus) Root() string {
	return c.root
}

// ListFiles walks the corpus directory and returns the paths of all
// indexable files, skipping hidden entries and unsupported extensions.
func (c *Corpus) ListFiles(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(c.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			if entry.IsDir() && path != c.root {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if indexableExtension(filepath.Ext(name)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus dir: %w", err)
	}
	return paths, nil
}

func indexableExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".txt", ".md":
		return true
	default:
		return false
	}
}
