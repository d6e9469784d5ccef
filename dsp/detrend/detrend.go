// Package detrend removes constant or linear trends from a signal prior to
// correlation analysis.
package detrend

// Func transforms a signal into its detrended form. Implementations return a
// new slice and leave the input untouched, except [None] which returns the
// input as-is.
type Func func(x []float64) []float64

// None returns x unchanged.
func None(x []float64) []float64 {
	return x
}

// Mean subtracts the arithmetic mean from every sample.
func Mean(x []float64) []float64 {
	if len(x) == 0 {
		return x
	}

	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}

// Linear subtracts the least-squares line fit through the signal.
//
// The fit minimizes sum((x[i] - (a + b*i))^2) over intercept a and slope b.
func Linear(x []float64) []float64 {
	n := len(x)
	if n < 2 {
		return Mean(x)
	}

	// Closed-form least squares with t = 0..n-1.
	// sum(t) = n(n-1)/2, sum(t^2) = n(n-1)(2n-1)/6.
	fn := float64(n)
	sumT := fn * (fn - 1) / 2
	sumTT := fn * (fn - 1) * (2*fn - 1) / 6

	var sumX, sumTX float64
	for i, v := range x {
		sumX += v
		sumTX += float64(i) * v
	}

	det := fn*sumTT - sumT*sumT
	slope := (fn*sumTX - sumT*sumX) / det
	intercept := (sumX - slope*sumT) / fn

	out := make([]float64, n)
	for i, v := range x {
		out[i] = v - (intercept + slope*float64(i))
	}
	return out
}
