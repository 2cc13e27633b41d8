package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// ErrNotDirectory indicates the posts path is not a directory.
var ErrNotDirectory = errors.New("posts path is not a directory")

// Discover returns the Markdown files under dir, sorted by path.
// Hidden files and directories (leading dot) are skipped.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// LoadDocument reads and parses a post source file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from Discover or the CLI
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}
