package planfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DiscoveredFile is a plan document found by ScanDir.
type DiscoveredFile struct {
	Path    string
	Name    string // file name without extension
	ModTime time.Time
	Size    int64
}

// Fingerprint identifies one version of a plan file on disk.
type Fingerprint struct {
	ModTime time.Time
	Size    int64
}

// Stat returns the current fingerprint of the file at path.
func Stat(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// ScanDir walks dir and returns every *.toml plan document, sorted by name.
// A missing directory yields no files and no error. Hidden files, including
// the temporaries left by an interrupted WriteFile, are skipped.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if filepath.Ext(name) != ".toml" || strings.HasPrefix(name, ".") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // file vanished mid-walk
		}
		files = append(files, DiscoveredFile{
			Path:    path,
			Name:    nameFromPath(path),
			ModTime: fi.ModTime(),
			Size:    fi.Size(),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, err
}

func nameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
