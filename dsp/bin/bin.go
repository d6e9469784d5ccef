// Package bin sums thresholded spike samples into time bins.
//
// Input is a flat, row-major T×N matrix of 0/1 samples (T time steps, N
// channels). Bin boundaries are given as a sorted slice of row indices; adjacent
// boundaries define the half-open interval [edges[i], edges[i+1]). The output is
// a flat B×N matrix of per-bin, per-channel counts.
//
// Bins need not cover the full time range: samples before the first edge or
// after the last are simply not counted. Zero-width bins yield a count of zero.
package bin

import (
	"errors"
	"fmt"
)

// Errors returned by binning functions.
var (
	ErrInvalidChannels = errors.New("bin: channel count must be positive")
	ErrRaggedSamples   = errors.New("bin: sample length not divisible by channel count")
	ErrTooFewEdges     = errors.New("bin: need at least one bin edge")
	ErrUnsortedEdges   = errors.New("bin: edges must be non-decreasing")
	ErrEdgeOutOfRange  = errors.New("bin: edge outside sample range")
)

// Counts sums samples into the bins defined by edges.
//
// samples is a row-major T×channels matrix; edges has length B+1 and must be
// non-decreasing with every value in [0, T]. The result is a newly allocated
// row-major B×channels matrix of counts. An edges slice of length 1 (B == 0)
// yields an empty result.
func Counts(samples []uint8, channels int, edges []int) ([]int64, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	if len(samples)%channels != 0 {
		return nil, ErrRaggedSamples
	}
	if len(edges) < 1 {
		return nil, ErrTooFewEdges
	}

	rows := len(samples) / channels
	for i, e := range edges {
		if e < 0 || e > rows {
			return nil, fmt.Errorf("%w: edges[%d] = %d, sample rows = %d",
				ErrEdgeOutOfRange, i, e, rows)
		}
		if i > 0 && e < edges[i-1] {
			return nil, fmt.Errorf("%w: edges[%d] = %d < edges[%d] = %d",
				ErrUnsortedEdges, i, e, i-1, edges[i-1])
		}
	}

	bins := len(edges) - 1
	out := make([]int64, bins*channels)
	CountsTo(out, samples, channels, edges)
	return out, nil
}

// CountsTo sums samples into a pre-allocated, zeroed destination.
//
// This is the unchecked fast path: dst must have length (len(edges)-1)*channels
// and edges must satisfy the contract documented on [Counts]. Callers that have
// validated once may invoke this repeatedly without re-validation.
func CountsTo(dst []int64, samples []uint8, channels int, edges []int) {
	bins := len(edges) - 1

	for i := 0; i < bins; i++ {
		lo, hi := edges[i], edges[i+1]
		row := dst[i*channels : (i+1)*channels]

		for j := lo; j < hi; j++ {
			src := samples[j*channels : (j+1)*channels]
			for k, v := range src {
				row[k] += int64(v)
			}
		}
	}
}
