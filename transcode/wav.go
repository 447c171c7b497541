package transcode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/avesono/motif/algorithms/filters"
	"github.com/avesono/motif/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono PCM in [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Channel count of the source file
	Duration   time.Duration `json:"duration"`
}

// DurationSeconds returns the clip duration in seconds, derived from the
// sample count so it stays consistent with the metadata fields.
func (a *AudioData) DurationSeconds() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.PCM)) / float64(a.SampleRate)
}

// DecodeWAVFile decodes a WAV file into mono float64 PCM.
//
// Multi-channel audio is downmixed by averaging channels. Samples are scaled
// by the source bit depth into [-1, 1].
func DecodeWAVFile(path string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "transcode",
		"path":      path,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM from %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("%s reports %d channels", path, channels)
	}
	sampleRate := buf.Format.SampleRate
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%s reports sample rate %d", path, sampleRate)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numSamples := len(buf.Data) / channels
	pcm := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		pcm[i] = sum / float64(channels) / scale
	}

	// Field recordings often carry a DC offset; strip it before any
	// spectral analysis.
	filters.NewDCRemoval().ProcessInPlace(pcm)

	audio := &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   time.Duration(float64(numSamples) / float64(sampleRate) * float64(time.Second)),
	}

	logger.Debug("decoded audio", logging.Fields{
		"sample_rate": sampleRate,
		"channels":    channels,
		"samples":     numSamples,
	})

	return audio, nil
}
