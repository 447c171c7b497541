package workflow

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio"

	"github.com/avesono/motif/algorithms/chroma"
	"github.com/avesono/motif/algorithms/motif"
	"github.com/avesono/motif/config"
	"github.com/avesono/motif/logging"
	"github.com/avesono/motif/transcode"
)

const (
	metadataFileName = "metadata.json"
	profileFileName  = "mp.npy"
	indexFileName    = "pi.npy"
)

// Extractor runs the per-recording pipeline: decode, CENS features, matrix
// profile, write. Decode is injectable so tests can feed synthetic audio.
type Extractor struct {
	CensSampleRate int
	Window         int
	MinDuration    float64
	AudioExtension string
	Decode         func(path string) (*transcode.AudioData, error)

	logger logging.Logger
}

// NewExtractor creates an extractor from pipeline configuration.
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		CensSampleRate: cfg.CensSampleRate,
		Window:         cfg.MatrixProfileWindow,
		MinDuration:    cfg.MinDurationSeconds,
		AudioExtension: cfg.AudioExtension,
		Decode:         transcode.DecodeWAVFile,
		logger: logging.WithFields(logging.Fields{
			"component": "extractor",
		}),
	}
}

// Process locates the motif pair for one recording and writes its output set
// under outputRoot: a directory named after the recording holding
// metadata.json plus mp.npy/pi.npy when the clip was long enough to analyze.
//
// A recording whose complete output set already exists is skipped, so a batch
// interrupted halfway can be rerun without redoing finished work.
func (e *Extractor) Process(inputPath, outputRoot string) error {
	if info, err := os.Stat(outputRoot); err == nil && !info.IsDir() {
		return &ConfigurationError{Reason: fmt.Sprintf("output path %s exists but is not a directory", outputRoot)}
	}

	name := strings.TrimSuffix(filepath.Base(inputPath), e.AudioExtension)
	dir := filepath.Join(outputRoot, name)

	if outputComplete(dir) {
		e.logger.Debug("output already complete, skipping", logging.Fields{"path": inputPath})
		return nil
	}

	audio, err := e.Decode(inputPath)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	hop := chroma.HopLength(audio.SampleRate, e.CensSampleRate)
	cens := chroma.NewCENS(audio.SampleRate)

	duration := audio.DurationSeconds()
	metadata := Metadata{
		SourceName:          sourceName(inputPath),
		CensSampleRate:      e.CensSampleRate,
		MatrixProfileWindow: e.Window,
		SampleRate:          audio.SampleRate,
		DurationCens:        cens.FrameCount(len(audio.PCM), hop),
		DurationSamples:     len(audio.PCM),
		DurationSeconds:     math.Round(duration*100) / 100,
	}

	if duration < e.MinDuration {
		// Too short for a meaningful self-similarity window; may even be
		// shorter than one analysis frame. Still worth a metadata record,
		// the consolidated table wants every recording.
		e.logger.Debug("duration below threshold, writing null motif", logging.Fields{
			"path":     inputPath,
			"duration": metadata.DurationSeconds,
		})
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return writeMetadata(dir, &metadata)
	}

	features, err := cens.Compute(audio.PCM, hop)
	if err != nil {
		return fmt.Errorf("computing features for %s: %w", inputPath, err)
	}

	mp, pi, err := motif.SelfJoin(features, e.Window)
	if err != nil {
		return fmt.Errorf("locating motif in %s: %w", inputPath, err)
	}

	motif0, motif1 := motif.BestPair(mp, pi)
	if motif1 < 0 {
		// The exclusion zone covered every candidate pair. Treat like the
		// short-recording branch rather than recording a bogus index.
		e.logger.Warn("no valid motif pair, writing null motif", logging.Fields{
			"path":   inputPath,
			"frames": metadata.DurationCens,
			"window": e.Window,
		})
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return writeMetadata(dir, &metadata)
	}

	m0, m1 := int64(motif0), int64(motif1)
	metadata.Motif0 = &m0
	metadata.Motif1 = &m1

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeMetadata(dir, &metadata); err != nil {
		return err
	}
	if err := writeNPY(filepath.Join(dir, profileFileName), mp); err != nil {
		return err
	}
	indices := make([]int64, len(pi))
	for i, v := range pi {
		indices[i] = int64(v)
	}
	return writeNPY(filepath.Join(dir, indexFileName), indices)
}

// outputComplete reports whether a recording's output set needs no rework.
// Complete means metadata.json parses and, when a motif pair was recorded,
// both profile arrays exist. A half-written metadata file fails to parse and
// therefore reads as incomplete.
func outputComplete(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, metadataFileName))
	if err != nil {
		return false
	}

	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return false
	}

	if md.Motif0 == nil {
		return true
	}

	for _, name := range []string{profileFileName, indexFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// writeMetadata writes metadata.json atomically: temp file in the same
// directory, then rename. A crash mid-write leaves no parseable metadata.
func writeMetadata(dir string, md *Metadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, metadataFileName+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, metadataFileName))
}

func writeNPY(path string, val any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := npyio.Write(f, val); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// sourceName identifies a recording by its last three path components, which
// in the expected layout is dataset/species/file.
func sourceName(path string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "/")
}
