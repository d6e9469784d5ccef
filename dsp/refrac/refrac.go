// Package refrac clears the refractory period of thresholded spike trains.
//
// After a neuron fires it cannot fire again for a short refractory period;
// threshold crossings inside that window are artifacts of the same spike.
// Clear removes them so that downstream binning counts each spike once.
package refrac

import "errors"

// Errors returned by Clear.
var (
	ErrInvalidChannels = errors.New("refrac: channel count must be positive")
	ErrRaggedSamples   = errors.New("refrac: sample length not divisible by channel count")
	ErrNegativeWindow  = errors.New("refrac: window must be non-negative")
)

// Clear zeroes, per channel, the window samples following each detected
// spike, in place.
//
// spikes is a row-major T×channels matrix of 0/1 values. When a nonzero
// sample is found, the next window rows of that channel are forced to zero
// and skipped as spike candidates. A window of zero leaves the input
// untouched.
func Clear(spikes []uint8, channels, window int) error {
	if channels < 1 {
		return ErrInvalidChannels
	}
	if len(spikes)%channels != 0 {
		return ErrRaggedSamples
	}
	if window < 0 {
		return ErrNegativeWindow
	}
	if window == 0 {
		return nil
	}

	rows := len(spikes) / channels
	ClearTo(spikes, rows, channels, window)
	return nil
}

// ClearTo is the unchecked fast path of [Clear]. The contract documented
// there must hold; window must be positive.
func ClearTo(spikes []uint8, rows, channels, window int) {
	for k := 0; k < channels; k++ {
		for i := 0; i < rows; i++ {
			if spikes[i*channels+k] == 0 {
				continue
			}

			end := i + window
			if end > rows-1 {
				end = rows - 1
			}
			for j := i + 1; j <= end; j++ {
				spikes[j*channels+k] = 0
			}
			i = end
		}
	}
}
