package workflow

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ScanRecordings walks the raw root (optionally narrowed to one species
// subdirectory) and returns every audio file with the given extension,
// sorted for deterministic task ordering. An empty scan is a
// ConfigurationError: the caller asked for something that isn't there.
func ScanRecordings(root, species, ext string) ([]string, error) {
	base := root
	if species != "" {
		base = filepath.Join(root, species)
	}

	var files []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", base, err)
	}

	if len(files) == 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no %s files found under %s", ext, base)}
	}

	sort.Strings(files)
	return files, nil
}

// ScanMetadata returns every metadata.json under root, sorted.
func ScanMetadata(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == metadataFileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	if len(files) == 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no %s files found under %s", metadataFileName, root)}
	}

	sort.Strings(files)
	return files, nil
}
