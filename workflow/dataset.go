package workflow

import (
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/avesono/motif/config"
	"github.com/avesono/motif/logging"
)

// ExtractDataset scans the raw root and runs the per-recording pipeline for
// every matching file, writing into the named intermediate dataset. Each
// recording keeps its species subdirectory in the output layout. Per-file
// failures are reported in the results, never fatal to the batch.
func ExtractDataset(cfg *config.Config, species, dataset string) ([]Result, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "extract",
		"dataset":   dataset,
	})

	rawRoot := cfg.RawRoot()
	files, err := ScanRecordings(rawRoot, species, cfg.AudioExtension)
	if err != nil {
		return nil, err
	}
	logger.Info("scanned raw recordings", logging.Fields{
		"files":   len(files),
		"species": species,
	})

	extractor := NewExtractor(cfg)
	dst := cfg.IntermediatePath(dataset)

	tasks := make([]Task, 0, len(files))
	for _, path := range files {
		path := path
		rel, err := filepath.Rel(rawRoot, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		outDir := filepath.Join(dst, filepath.Dir(rel))

		tasks = append(tasks, Task{Name: path, Run: func() error {
			return extractor.Process(path, outDir)
		}})
	}

	bar := progressbar.Default(int64(len(tasks)), "extract")
	results := RunPool(cfg.Workers, tasks, bar)

	if failures := Failures(results); len(failures) > 0 {
		logger.Warn("some recordings failed", logging.Fields{
			"failed": len(failures),
			"total":  len(results),
		})
	}
	return results, nil
}
