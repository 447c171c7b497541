package filters

// DCRemoval implements a single-pole DC blocking filter:
//
//	y[n] = x[n] - x[n-1] + R * y[n-1]
//
// Field recordings often carry a DC offset from the capture chain; left in,
// it leaks energy into the low FFT bins and biases the pitch-class folding.
// Three operations per sample, no passband ripple.
type DCRemoval struct {
	poleLocation float64 // R parameter (0 < R < 1)

	// State variables
	x1 float64 // Previous input sample x[n-1]
	y1 float64 // Previous output sample y[n-1]
}

// NewDCRemoval creates a DC removal filter with the standard audio pole
// location of 0.995 (cutoff around 8 Hz at 44.1 kHz).
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{
		poleLocation: 0.995,
	}
}

// NewDCRemovalWithPole creates a DC removal filter with an explicit pole
// location. Closer to 1 means a lower cutoff and stronger DC blocking.
func NewDCRemovalWithPole(poleLocation float64) *DCRemoval {
	if poleLocation <= 0 || poleLocation >= 1 {
		poleLocation = 0.995
	}
	return &DCRemoval{
		poleLocation: poleLocation,
	}
}

// Process filters a signal, returning a new slice. Filter state carries
// across calls; use Reset between independent signals.
func (dc *DCRemoval) Process(signal []float64) []float64 {
	out := make([]float64, len(signal))
	for i, x := range signal {
		y := x - dc.x1 + dc.poleLocation*dc.y1
		dc.x1 = x
		dc.y1 = y
		out[i] = y
	}
	return out
}

// ProcessInPlace filters a signal in place.
func (dc *DCRemoval) ProcessInPlace(signal []float64) {
	for i, x := range signal {
		y := x - dc.x1 + dc.poleLocation*dc.y1
		dc.x1 = x
		dc.y1 = y
		signal[i] = y
	}
}

// Reset clears the filter state.
func (dc *DCRemoval) Reset() {
	dc.x1 = 0
	dc.y1 = 0
}
