package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source is a file found below Root. Rel is its path relative to Root.
type Source struct {
	Root string
	Rel  string
}

// Path returns the path of the source file.
func (s Source) Path() string {
	return filepath.Join(s.Root, s.Rel)
}

// CollectSources lists the files of every path in walk order.
// A file path is its own source, relative to its directory.
// Hidden directories below a walked directory are skipped.
func CollectSources(paths ...string) ([]Source, error) {
	var res []Source

	for _, src := range paths {
		info, err := os.Stat(src)
		if err != nil {
			return nil, err
		}

		// single file passed
		if !info.IsDir() {
			res = append(res, Source{Root: filepath.Dir(src), Rel: filepath.Base(src)})
			continue
		}

		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != src && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}

			rel, _ := filepath.Rel(src, path)
			res = append(res, Source{Root: src, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// HasExtension reports whether path ends with one of exts, ignoring case.
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
