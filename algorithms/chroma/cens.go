package chroma

import (
	"fmt"
	"math"

	"github.com/avesono/motif/algorithms/spectral"
	"github.com/avesono/motif/algorithms/windowing"
)

// CENS computes chroma-energy normalized statistics features.
//
// The chain follows the standard CENS construction:
//   - STFT magnitude spectrogram
//   - fold frequency bins into 12 pitch classes (octave-folded energy)
//   - per-frame L1 energy normalization
//   - amplitude quantization into coarse energy steps
//   - temporal smoothing with a Hann window per pitch class
//   - per-frame L2 normalization
//
// The quantization and smoothing make the features robust to timbre and
// dynamics, which is what the motif search wants: two renditions of the same
// call should land close in feature space even when the bird sings louder
// the second time.
type CENS struct {
	sampleRate int
	tuningFreq float64 // A4 frequency (default 440 Hz)
	chromaBins int     // Number of chroma bins (always 12)
	minFreq    float64 // Minimum frequency to consider
	maxFreq    float64 // Maximum frequency to consider
	windowSize int     // STFT analysis window
	smoothLen  int     // Temporal smoothing window length (frames)
	stft       *spectral.STFT
}

// Quantization steps shared by all CENS implementations: each threshold
// crossed contributes an equal weight to the quantized energy.
var (
	censThresholds = []float64{0.05, 0.1, 0.2, 0.4}
	censWeights    = []float64{0.25, 0.25, 0.25, 0.25}
)

// NewCENS creates a CENS calculator with standard settings
func NewCENS(sampleRate int) *CENS {
	return &CENS{
		sampleRate: sampleRate,
		tuningFreq: 440.0,
		chromaBins: 12,
		minFreq:    80.0,   // Approximate E2
		maxFreq:    8000.0, // High enough for bird-call harmonics
		windowSize: 2048,
		smoothLen:  41,
		stft:       spectral.NewSTFT(),
	}
}

// HopLength converts a target feature frame rate into an STFT hop length.
// The conversion is fixed: hop = round(sampleRate / framesPerSecond).
func HopLength(sampleRate, framesPerSecond int) int {
	return int(math.Round(float64(sampleRate) / float64(framesPerSecond)))
}

// FrameCount reports how many feature frames Compute would produce for a
// signal of the given length at the given hop, without running the analysis.
// Signals shorter than one analysis window produce no frames.
func (c *CENS) FrameCount(numSamples, hopSize int) int {
	if hopSize <= 0 || numSamples < c.windowSize {
		return 0
	}
	return (numSamples-c.windowSize)/hopSize + 1
}

// Compute computes the CENS feature matrix for a signal.
//
// The result is oriented (bins x frames): result[b][t] is the energy of pitch
// class b at frame t. Frames advance by hopSize samples, so the column index
// is the time axis the motif search runs over.
func (c *CENS) Compute(signal []float64, hopSize int) ([][]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	window := windowing.NewHann(c.windowSize, true)
	stftResult, err := c.stft.ComputeWithWindow(signal, c.windowSize, hopSize, c.sampleRate, window)
	if err != nil {
		return nil, err
	}

	chroma := c.foldToChroma(stftResult)

	for t := range chroma {
		normalizeL1(chroma[t])
		quantizeFrame(chroma[t])
	}

	smoothed := c.smoothChroma(chroma)

	for t := range smoothed {
		normalizeL2(smoothed[t])
	}

	return transpose(smoothed, c.chromaBins), nil
}

// foldToChroma maps the magnitude spectrogram into octave-folded pitch
// class energies, time-major ([frames][bins])
func (c *CENS) foldToChroma(stftResult *spectral.STFTResult) [][]float64 {
	mapping := c.chromaMapping(stftResult.FreqBins, stftResult.FreqResolution)

	chroma := make([][]float64, stftResult.TimeFrames)
	for t := 0; t < stftResult.TimeFrames; t++ {
		chroma[t] = make([]float64, c.chromaBins)

		for f := 0; f < stftResult.FreqBins; f++ {
			bin := mapping[f]
			if bin < 0 {
				continue
			}

			magnitude := stftResult.Magnitude[t][f]
			// Magnitude squared for energy
			chroma[t][bin] += magnitude * magnitude
		}
	}

	return chroma
}

// chromaMapping maps FFT bins to chroma bins; bins outside the valid
// frequency range map to -1
func (c *CENS) chromaMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution

		if frequency < c.minFreq || frequency > c.maxFreq {
			mapping[f] = -1
			continue
		}

		midiNote := c.frequencyToMIDI(frequency)
		chromaBin := int(math.Round(midiNote)) % c.chromaBins
		if chromaBin < 0 {
			chromaBin += c.chromaBins
		}
		mapping[f] = chromaBin
	}

	return mapping
}

// frequencyToMIDI converts frequency to MIDI note number
// A4 (tuningFreq) = MIDI note 69
func (c *CENS) frequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0
	}

	return 69.0 + 12.0*math.Log2(frequency/c.tuningFreq)
}

// quantizeFrame replaces L1-normalized energies with coarse quantized steps
func quantizeFrame(frame []float64) {
	for i, v := range frame {
		q := 0.0
		for s, threshold := range censThresholds {
			if v > threshold {
				q += censWeights[s]
			}
		}
		frame[i] = q
	}
}

// smoothChroma convolves each pitch class with a Hann window across time
// ("same" length output)
func (c *CENS) smoothChroma(chroma [][]float64) [][]float64 {
	numFrames := len(chroma)
	if numFrames == 0 {
		return chroma
	}

	smoothLen := c.smoothLen
	if smoothLen > numFrames {
		smoothLen = numFrames
	}
	if smoothLen < 2 {
		// Nothing to smooth over (and a 1-point Hann is degenerate).
		return chroma
	}

	kernel := windowing.NewHann(smoothLen, true).GetCoefficients()
	kernelSum := 0.0
	for _, k := range kernel {
		kernelSum += k
	}
	if kernelSum <= 0 {
		kernelSum = 1
	}

	half := smoothLen / 2
	smoothed := make([][]float64, numFrames)

	for t := 0; t < numFrames; t++ {
		smoothed[t] = make([]float64, c.chromaBins)

		for k, w := range kernel {
			src := t + k - half
			if src < 0 || src >= numFrames {
				continue
			}
			for b := 0; b < c.chromaBins; b++ {
				smoothed[t][b] += w * chroma[src][b]
			}
		}
		for b := 0; b < c.chromaBins; b++ {
			smoothed[t][b] /= kernelSum
		}
	}

	return smoothed
}

func normalizeL1(frame []float64) {
	total := 0.0
	for _, v := range frame {
		total += v
	}

	if total > 1e-10 {
		for i := range frame {
			frame[i] /= total
		}
	}
}

func normalizeL2(frame []float64) {
	total := 0.0
	for _, v := range frame {
		total += v * v
	}

	norm := math.Sqrt(total)
	if norm > 1e-10 {
		for i := range frame {
			frame[i] /= norm
		}
	}
}

// transpose converts time-major chroma ([frames][bins]) into the
// (bins x frames) orientation the motif search consumes
func transpose(chroma [][]float64, bins int) [][]float64 {
	frames := len(chroma)
	out := make([][]float64, bins)
	for b := 0; b < bins; b++ {
		out[b] = make([]float64, frames)
		for t := 0; t < frames; t++ {
			out[b][t] = chroma[t][b]
		}
	}
	return out
}

// GetChromaLabels returns the chroma bin labels
func (c *CENS) GetChromaLabels() []string {
	return []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
}

// SetTuning updates the tuning frequency (A4)
func (c *CENS) SetTuning(tuningFreq float64) {
	c.tuningFreq = tuningFreq
}
