package motif

import (
	"fmt"
	"math"
)

// InvalidWindowError reports a subsequence window that cannot be searched:
// the window must be positive and strictly smaller than the number of frames.
// Validation happens before any numeric work.
type InvalidWindowError struct {
	Window int
	Frames int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid matrix profile window %d for %d frames", e.Window, e.Frames)
}

// SelfJoin computes the self-join matrix profile of a feature matrix.
//
// features is oriented (bins x frames); frames is the subsequence axis. For
// every start index i the profile holds the smallest Euclidean distance
// between the (bins x window) block starting at i and any other block whose
// start j lies outside the trivial-match exclusion zone |i - j| < window.
// The companion index slice holds the j that achieved that distance.
//
// Both slices have length frames - window + 1, the number of valid
// subsequence starts.
//
// The computation walks the distance matrix by diagonals and updates the
// cross-block dot product incrementally, the same recurrence the STOMP
// family of matrix profile algorithms uses:
//
//	dot(i+1, j+1) = dot(i, j) - <x_i, y_j> + <x_{i+w}, y_{j+w}>
//
// which brings the cost down from O(n^2 * w * bins) to O(n^2 * bins) while
// producing the same values as the brute-force definition up to floating
// point rounding. Each diagonal covers both (i, j) and (j, i), so the
// symmetric profile entries are updated in one pass.
//
// When the exclusion zone covers every candidate (frames < 2*window) no
// valid neighbor exists: profile entries stay +Inf and indices stay -1.
func SelfJoin(features [][]float64, window int) ([]float64, []int, error) {
	bins := len(features)
	if bins == 0 {
		return nil, nil, fmt.Errorf("empty feature matrix")
	}
	frames := len(features[0])
	for b := 1; b < bins; b++ {
		if len(features[b]) != frames {
			return nil, nil, fmt.Errorf("ragged feature matrix: bin %d has %d frames, want %d", b, len(features[b]), frames)
		}
	}

	if window <= 0 || window >= frames {
		return nil, nil, &InvalidWindowError{Window: window, Frames: frames}
	}

	n := frames - window + 1

	profile := make([]float64, n)
	index := make([]int, n)
	for i := range profile {
		profile[i] = math.Inf(1)
		index[i] = -1
	}

	// Squared norm of each subsequence block, accumulated over bins with a
	// sliding update per bin.
	sq := make([]float64, n)
	for b := 0; b < bins; b++ {
		row := features[b]
		s := 0.0
		for t := 0; t < window; t++ {
			s += row[t] * row[t]
		}
		sq[0] += s
		for i := 1; i < n; i++ {
			s += row[i+window-1]*row[i+window-1] - row[i-1]*row[i-1]
			sq[i] += s
		}
	}

	// Diagonal k pairs subsequence i with subsequence i+k. Diagonals inside
	// the exclusion zone (k < window) are skipped entirely.
	for k := window; k < n; k++ {
		dot := 0.0
		for b := 0; b < bins; b++ {
			row := features[b]
			for t := 0; t < window; t++ {
				dot += row[t] * row[k+t]
			}
		}
		update(profile, index, sq, 0, k, dot)

		for i := 1; i+k < n; i++ {
			for b := 0; b < bins; b++ {
				row := features[b]
				dot += row[i+window-1]*row[i+k+window-1] - row[i-1]*row[i+k-1]
			}
			update(profile, index, sq, i, i+k, dot)
		}
	}

	return profile, index, nil
}

// update folds the distance for pair (i, j) into both profile entries.
// Strict less-than keeps the earlier neighbor on ties, so the result is
// deterministic for a given input.
func update(profile []float64, index []int, sq []float64, i, j int, dot float64) {
	d2 := sq[i] + sq[j] - 2*dot
	if d2 < 0 {
		// Rounding in the incremental recurrence can push a true zero
		// slightly negative.
		d2 = 0
	}
	d := math.Sqrt(d2)

	if d < profile[i] {
		profile[i] = d
		index[i] = j
	}
	if d < profile[j] {
		profile[j] = d
		index[j] = i
	}
}
