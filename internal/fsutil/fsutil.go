// Package fsutil provides file system helpers for configuration discovery.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HCLFiles resolves path to the set of .hcl files it denotes: the file
// itself, or every .hcl file under the directory, recursively. The result
// is sorted so load order is stable. Resolving to zero files is an error;
// a profile path that silently loads nothing hides typos.
func HCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !strings.HasSuffix(info.Name(), ".hcl") {
			return nil, fmt.Errorf("%s: not an .hcl file", path)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found under %s", path)
	}
	sort.Strings(files)
	return files, nil
}
