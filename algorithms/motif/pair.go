package motif

import (
	"gonum.org/v1/gonum/floats"
)

// BestPair reduces a matrix profile to the motif pair: the start index with
// the globally smallest profile value and the index of its nearest neighbor.
//
// Ties on the minimum value break to the lowest start index. That policy is
// fixed here rather than left to the argmin primitive; gonum's MinIdx happens
// to return the first occurrence, and this function is documented to rely on
// exactly that ordering.
//
// The second index is -1 when the profile has no valid neighbors (every
// candidate fell inside the exclusion zone); callers treat that the same as
// a recording too short to analyze.
func BestPair(profile []float64, index []int) (int, int) {
	if len(profile) == 0 {
		return -1, -1
	}

	best := floats.MinIdx(profile)
	return best, index[best]
}
