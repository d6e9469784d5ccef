package xcorr

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Result holds a lag-correlation output. Lags runs from 1-maxlags to
// maxlags-1 and C holds the correlation value at each lag.
type Result struct {
	Lags []int
	C    []float64
}

// Correlate computes the cross-correlation of x and y through the frequency
// domain: the shorter input is zero-padded to the longer one, both are
// transformed at the next power of two covering all lags, and the inverse
// transform of X·conj(Y) yields the correlation.
//
// The value at lag m is the sum over t of x[t+m]*y[t]: a peak at a positive
// lag m means features of x occur m samples later than the matching features
// of y. See [WithMaxLags], [WithScale] and [WithDetrend] for the options.
func Correlate(x, y []float64, opts ...Option) (Result, error) {
	if len(x) == 0 || len(y) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg := applyOptions(opts...)
	x = cfg.detrend(x)
	y = cfg.detrend(y)
	x, y, lsize := padLarger(x, y)

	maxLags := cfg.maxLags
	if maxLags == 0 {
		maxLags = lsize
	}
	if maxLags < 1 || maxLags > lsize {
		return Result{}, fmt.Errorf("%w: maxlags = %d, signal length = %d",
			ErrInvalidMaxLags, maxLags, lsize)
	}

	full, err := correlateFull(x, y, lsize)
	if err != nil {
		return Result{}, err
	}

	return extractLags(full, x, y, lsize, maxLags, cfg.scale), nil
}

// AutoCorrelate computes the auto-correlation of x. It is equivalent to
// Correlate(x, x, ...) but uses the power-spectrum shortcut |X|^2 and skips
// the second forward transform.
func AutoCorrelate(x []float64, opts ...Option) (Result, error) {
	if len(x) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg := applyOptions(opts...)
	x = cfg.detrend(x)
	lsize := len(x)

	maxLags := cfg.maxLags
	if maxLags == 0 {
		maxLags = lsize
	}
	if maxLags < 1 || maxLags > lsize {
		return Result{}, fmt.Errorf("%w: maxlags = %d, signal length = %d",
			ErrInvalidMaxLags, maxLags, lsize)
	}

	fftSize := nextPowerOf2(2*lsize - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return Result{}, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	// Power spectrum; the inverse transform of |X|^2 is the autocorrelation.
	for i, v := range freq {
		re, im := real(v), imag(v)
		freq[i] = complex(re*re+im*im, 0)
	}

	resultTime := make([]complex128, fftSize)
	if err := plan.Inverse(resultTime, freq); err != nil {
		return Result{}, fmt.Errorf("xcorr: inverse FFT failed: %w", err)
	}

	full := make([]float64, fftSize)
	for i, v := range resultTime {
		full[i] = real(v)
	}

	return extractLags(full, x, x, lsize, maxLags, cfg.scale), nil
}

// correlateFull returns the circular correlation of x and y at the FFT size
// covering 2*lsize-1 lags. Index 0 is lag zero; negative lags wrap to the end.
func correlateFull(x, y []float64, lsize int) ([]float64, error) {
	fftSize := nextPowerOf2(2*lsize - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
	}

	xPadded := make([]complex128, fftSize)
	yPadded := make([]complex128, fftSize)
	for i, v := range x {
		xPadded[i] = complex(v, 0)
	}
	for i, v := range y {
		yPadded[i] = complex(v, 0)
	}

	xFreq := make([]complex128, fftSize)
	yFreq := make([]complex128, fftSize)
	if err := plan.Forward(xFreq, xPadded); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}
	if err := plan.Forward(yFreq, yPadded); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	// X * conj(Y)
	for i := range xFreq {
		yConj := complex(real(yFreq[i]), -imag(yFreq[i]))
		xFreq[i] *= yConj
	}

	resultTime := make([]complex128, fftSize)
	if err := plan.Inverse(resultTime, xFreq); err != nil {
		return nil, fmt.Errorf("xcorr: inverse FFT failed: %w", err)
	}

	full := make([]float64, fftSize)
	for i, v := range resultTime {
		full[i] = real(v)
	}
	return full, nil
}

// extractLags gathers the lag range 1-maxLags .. maxLags-1 from a circular
// correlation and applies the requested scaling.
func extractLags(full, x, y []float64, lsize, maxLags int, scale ScaleType) Result {
	nLags := 2*maxLags - 1
	lags := make([]int, nLags)
	c := make([]float64, nLags)

	fftSize := len(full)
	for i := range lags {
		lag := i + 1 - maxLags
		lags[i] = lag
		if lag < 0 {
			c[i] = full[fftSize+lag]
		} else {
			c[i] = full[lag]
		}
	}

	switch scale {
	case ScaleUnbiased:
		for i, lag := range lags {
			if lag < 0 {
				lag = -lag
			}
			c[i] /= float64(lsize - lag)
		}
	case ScaleNormalized:
		norm := math.Sqrt(dot(x, x) * dot(y, y))
		if norm != 0 {
			for i := range c {
				c[i] /= norm
			}
		}
	}

	return Result{Lags: lags, C: c}
}

// padLarger zero-pads the shorter of x and y to the longer length and
// returns both along with that length. Inputs are never modified.
func padLarger(x, y []float64) (px, py []float64, lsize int) {
	lsize = len(x)
	if len(y) > lsize {
		lsize = len(y)
	}

	if len(x) < lsize {
		padded := make([]float64, lsize)
		copy(padded, x)
		x = padded
	}
	if len(y) < lsize {
		padded := make([]float64, lsize)
		copy(padded, y)
		y = padded
	}
	return x, y, lsize
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
