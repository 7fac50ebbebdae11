package markdown

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Extension is the suffix a file must carry to be treated as a markdown document.
const Extension = ".md"

// FindFilesInDir walks root on the local filesystem. See FindFiles.
func FindFilesInDir(root string) ([]string, error) {
	return FindFiles(os.DirFS(root))
}

// FindFiles returns the slash separated paths of every markdown file found
// beneath the root of fsys, descending into every directory. A missing root
// yields an empty result. Paths are returned in lexical walk order.
func FindFiles(fsys fs.FS) ([]string, error) {
	info, err := fs.Stat(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("markdown walker stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown walker: root is not a directory")
	}

	files := []string{}
	walkErr := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("markdown walker read %s: %w", path, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}
