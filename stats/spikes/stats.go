// Package spikes computes per-channel statistics over binned spike counts.
package spikes

import (
	"errors"
	"math"
)

// Errors returned by Calculate.
var (
	ErrInvalidChannels = errors.New("spikes: channel count must be positive")
	ErrRaggedCounts    = errors.New("spikes: count length not divisible by channel count")
)

// ChannelStats holds count statistics for one channel of a binned matrix.
type ChannelStats struct {
	Bins     int
	Total    int64
	Mean     float64 // mean count per bin
	Variance float64 // population variance of counts
	Rate     float64 // spikes per second, 0 if the bin duration is unknown
	Fano     float64 // variance / mean, NaN for silent channels
}

// Calculate computes per-channel statistics over a row-major bins×channels
// count matrix, as produced by the binning aggregator. binSeconds is the
// duration of one bin; pass 0 or less if unknown, which leaves Rate at zero.
//
// The Fano factor (variance over mean) is 1 for a Poisson process; values
// below 1 indicate more regular firing, values above 1 burstier firing. It is
// NaN for channels with no spikes.
func Calculate(binned []int64, channels int, binSeconds float64) ([]ChannelStats, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	if len(binned)%channels != 0 {
		return nil, ErrRaggedCounts
	}

	bins := len(binned) / channels
	out := make([]ChannelStats, channels)

	for k := range out {
		out[k] = calculateChannel(binned, bins, channels, k, binSeconds)
	}
	return out, nil
}

// calculateChannel runs a single Welford pass over one channel's counts.
func calculateChannel(binned []int64, bins, channels, k int, binSeconds float64) ChannelStats {
	s := ChannelStats{Bins: bins, Fano: math.NaN()}
	if bins == 0 {
		return s
	}

	var (
		mean float64
		m2   float64
	)
	for i := 0; i < bins; i++ {
		v := binned[i*channels+k]
		s.Total += v

		delta := float64(v) - mean
		mean += delta / float64(i+1)
		m2 += delta * (float64(v) - mean)
	}

	s.Mean = mean
	s.Variance = m2 / float64(bins)
	if binSeconds > 0 {
		s.Rate = mean / binSeconds
	}
	if mean != 0 {
		s.Fano = s.Variance / mean
	}
	return s
}
