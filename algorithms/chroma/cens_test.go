package chroma

import (
	"math"
	"testing"
)

func sineSignal(freq float64, sampleRate int, seconds float64) []float64 {
	n := int(seconds * float64(sampleRate))
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return signal
}

func TestHopLength(t *testing.T) {
	cases := []struct {
		sampleRate int
		rate       int
		want       int
	}{
		{22050, 10, 2205},
		{44100, 10, 4410},
		{44100, 32, 1378}, // 1378.125 rounds down
		{22050, 4, 5513},  // 5512.5 rounds up
	}

	for _, tc := range cases {
		if got := HopLength(tc.sampleRate, tc.rate); got != tc.want {
			t.Errorf("HopLength(%d, %d) = %d, want %d", tc.sampleRate, tc.rate, got, tc.want)
		}
	}
}

func TestComputeShape(t *testing.T) {
	sampleRate := 22050
	signal := sineSignal(440.0, sampleRate, 3.0)
	hop := HopLength(sampleRate, 10)

	features, err := NewCENS(sampleRate).Compute(signal, hop)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(features) != 12 {
		t.Fatalf("got %d bins, want 12", len(features))
	}

	wantFrames := (len(signal)-2048)/hop + 1
	for b := range features {
		if len(features[b]) != wantFrames {
			t.Fatalf("bin %d has %d frames, want %d", b, len(features[b]), wantFrames)
		}
	}

	// Each frame is L2-normalized (or silent).
	for tIdx := 0; tIdx < wantFrames; tIdx++ {
		norm := 0.0
		for b := range features {
			norm += features[b][tIdx] * features[b][tIdx]
		}
		norm = math.Sqrt(norm)
		if norm > 1e-10 && math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("frame %d has L2 norm %v, want 1", tIdx, norm)
		}
	}
}

func TestFrameCountMatchesCompute(t *testing.T) {
	sampleRate := 22050
	signal := sineSignal(440.0, sampleRate, 2.5)
	hop := HopLength(sampleRate, 10)

	c := NewCENS(sampleRate)
	features, err := c.Compute(signal, hop)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if got := c.FrameCount(len(signal), hop); got != len(features[0]) {
		t.Errorf("FrameCount = %d, Compute produced %d frames", got, len(features[0]))
	}
	if got := c.FrameCount(100, hop); got != 0 {
		t.Errorf("FrameCount for sub-frame signal = %d, want 0", got)
	}
	if got := c.FrameCount(len(signal), 0); got != 0 {
		t.Errorf("FrameCount with zero hop = %d, want 0", got)
	}
}

func TestComputePureToneLandsOnPitchClass(t *testing.T) {
	// A4 = 440 Hz is MIDI note 69, pitch class 9.
	sampleRate := 22050
	signal := sineSignal(440.0, sampleRate, 3.0)
	hop := HopLength(sampleRate, 10)

	features, err := NewCENS(sampleRate).Compute(signal, hop)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	mid := len(features[0]) / 2
	best := 0
	for b := range features {
		if features[b][mid] > features[best][mid] {
			best = b
		}
	}
	if best != 9 {
		t.Errorf("dominant pitch class %d, want 9 (A)", best)
	}
}

func TestComputeDeterministic(t *testing.T) {
	sampleRate := 22050
	signal := sineSignal(523.25, sampleRate, 2.0)
	hop := HopLength(sampleRate, 10)

	first, err := NewCENS(sampleRate).Compute(signal, hop)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := NewCENS(sampleRate).Compute(signal, hop)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for b := range first {
		for tIdx := range first[b] {
			if first[b][tIdx] != second[b][tIdx] {
				t.Fatalf("feature [%d][%d] differs between runs", b, tIdx)
			}
		}
	}
}

func TestComputeRejectsBadInput(t *testing.T) {
	c := NewCENS(22050)

	if _, err := c.Compute(nil, 2205); err == nil {
		t.Error("expected error for empty signal")
	}
	if _, err := c.Compute(sineSignal(440, 22050, 1.0), 0); err == nil {
		t.Error("expected error for zero hop")
	}
}
