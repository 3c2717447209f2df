package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finmock/internal/model"
)

// ScanDir looks for the four table files in dir and returns the ones present,
// in model.Files order.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []DiscoveredFile
	for _, name := range model.Files {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if fi.IsDir() {
			continue
		}
		files = append(files, DiscoveredFile{Name: name, Path: path, Size: fi.Size()})
	}
	return files, nil
}

// MissingFiles returns the table names absent from files.
func MissingFiles(files []DiscoveredFile) []string {
	have := make(map[string]bool, len(files))
	for _, f := range files {
		have[f.Name] = true
	}
	var missing []string
	for _, name := range model.Files {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
