package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/schollz/progressbar/v3"

	"github.com/avesono/motif/logging"
)

// Consolidate merges every per-recording metadata record found under
// inputRoot into a single Parquet table at outputPath. The table is derived
// state: it can be rebuilt from the records at any time. Rows come back in
// the scan's sorted file order.
func Consolidate(inputRoot, outputPath string, workers int) ([]Metadata, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "consolidate",
	})

	files, err := ScanMetadata(inputRoot)
	if err != nil {
		return nil, err
	}

	records := make([]Metadata, len(files))
	tasks := make([]Task, len(files))
	for i, path := range files {
		tasks[i] = Task{Name: path, Run: readMetadataInto(path, &records[i])}
	}

	bar := progressbar.Default(int64(len(tasks)), "consolidate")
	results := RunPool(workers, tasks, bar)

	if failures := Failures(results); len(failures) > 0 {
		for _, f := range failures {
			logger.Error(f.Err, "unreadable metadata record", logging.Fields{"path": f.Name})
		}
		return nil, fmt.Errorf("%d of %d metadata records failed to read: %w", len(failures), len(files), failures[0].Err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, err
	}
	if err := writeParquet(outputPath, records); err != nil {
		return nil, err
	}

	logger.Info("wrote consolidated table", logging.Fields{
		"rows": len(records),
		"path": outputPath,
	})
	return records, nil
}

func readMetadataInto(path string, dst *Metadata) func() error {
	return func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dst)
	}
}

func writeParquet(path string, records []Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := parquet.NewGenericWriter[Metadata](f)
	if _, err := w.Write(records); err != nil {
		w.Close()
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return f.Close()
}
