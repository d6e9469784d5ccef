package testutil

import "math/rand"

// SpikeTrain generates a deterministic row-major rows×channels matrix of 0/1
// samples where each sample fires with probability rate.
func SpikeTrain(seed int64, rows, channels int, rate float64) []uint8 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]uint8, rows*channels)
	for i := range out {
		if rng.Float64() < rate {
			out[i] = 1
		}
	}
	return out
}

// TotalSpikes returns the number of nonzero samples in a spike matrix.
func TotalSpikes(spikes []uint8) int64 {
	var total int64
	for _, v := range spikes {
		total += int64(v)
	}
	return total
}
