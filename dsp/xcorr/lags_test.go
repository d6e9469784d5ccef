package xcorr

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spike/dsp/detrend"
	"github.com/cwbudde/algo-spike/internal/testutil"
)

const fftTolerance = 1e-9

func TestCorrelate_ImpulseShift(t *testing.T) {
	// x carries the same impulse as y, two samples later.
	x := make([]float64, 8)
	y := make([]float64, 8)
	x[3] = 1
	y[1] = 1

	res, err := Correlate(x, y)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	if len(res.Lags) != 15 || len(res.C) != 15 {
		t.Fatalf("lag count: got %d, want 15", len(res.C))
	}

	for i, lag := range res.Lags {
		want := 0.0
		if lag == 2 {
			want = 1.0
		}
		if math.Abs(res.C[i]-want) > fftTolerance {
			t.Errorf("lag %d: got %g, want %g", lag, res.C[i], want)
		}
	}
}

func TestCorrelate_UnequalLengths(t *testing.T) {
	// The shorter signal is zero-padded; the peak still lands on the shift.
	x := make([]float64, 12)
	y := make([]float64, 5)
	x[4] = 1
	y[4] = 1

	res, err := Correlate(x, y)
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	peakLag, peakVal := 0, math.Inf(-1)
	for i, v := range res.C {
		if v > peakVal {
			peakVal = v
			peakLag = res.Lags[i]
		}
	}
	if peakLag != 0 {
		t.Errorf("peak lag: got %d, want 0", peakLag)
	}
}

func TestCorrelate_UnbiasedConstant(t *testing.T) {
	// Raw correlation of all-ones is lsize-|lag|; unbiased scaling flattens it.
	x := make([]float64, 8)
	for i := range x {
		x[i] = 1
	}

	res, err := Correlate(x, x, WithScale(ScaleUnbiased))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	for i, lag := range res.Lags {
		if math.Abs(res.C[i]-1) > fftTolerance {
			t.Errorf("lag %d: got %g, want 1", lag, res.C[i])
		}
	}
}

func TestCorrelate_MaxLags(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}

	res, err := Correlate(x, x, WithMaxLags(3))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	if len(res.C) != 5 {
		t.Fatalf("lag count: got %d, want 5", len(res.C))
	}
	if res.Lags[0] != -2 || res.Lags[4] != 2 {
		t.Errorf("lag range: got [%d, %d], want [-2, 2]", res.Lags[0], res.Lags[4])
	}
}

func TestCorrelate_DetrendMean(t *testing.T) {
	// A constant signal has no structure left after mean removal.
	x := make([]float64, 16)
	for i := range x {
		x[i] = 3
	}

	res, err := Correlate(x, x, WithDetrend(detrend.Mean))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	for i, v := range res.C {
		if math.Abs(v) > fftTolerance {
			t.Errorf("lag %d: got %g, want 0", res.Lags[i], v)
		}
	}
}

func TestCorrelate_Validation(t *testing.T) {
	x := []float64{1, 2, 3}

	if _, err := Correlate(nil, x); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty x: got %v, want ErrEmptyInput", err)
	}
	if _, err := Correlate(x, nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty y: got %v, want ErrEmptyInput", err)
	}
	if _, err := Correlate(x, x, WithMaxLags(4)); !errors.Is(err, ErrInvalidMaxLags) {
		t.Errorf("maxlags too large: got %v, want ErrInvalidMaxLags", err)
	}
	if _, err := Correlate(x, x, WithMaxLags(-1)); !errors.Is(err, ErrInvalidMaxLags) {
		t.Errorf("negative maxlags: got %v, want ErrInvalidMaxLags", err)
	}
}

func TestAutoCorrelate_MatchesCorrelate(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	x := make([]float64, 32)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	auto, err := AutoCorrelate(x, WithMaxLags(10))
	if err != nil {
		t.Fatalf("AutoCorrelate: %v", err)
	}
	cross, err := Correlate(x, x, WithMaxLags(10))
	if err != nil {
		t.Fatalf("Correlate: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, auto.C, cross.C, fftTolerance)
}

func TestAutoCorrelate_SymmetryAndEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	x := make([]float64, 64)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	res, err := AutoCorrelate(x)
	if err != nil {
		t.Fatalf("AutoCorrelate: %v", err)
	}

	center := len(res.C) / 2
	if res.Lags[center] != 0 {
		t.Fatalf("center lag: got %d, want 0", res.Lags[center])
	}

	var energy float64
	for _, v := range x {
		energy += v * v
	}
	if math.Abs(res.C[center]-energy) > 1e-8 {
		t.Errorf("zero lag: got %g, want energy %g", res.C[center], energy)
	}

	for i := 1; i <= center; i++ {
		if math.Abs(res.C[center-i]-res.C[center+i]) > fftTolerance {
			t.Errorf("asymmetry at lag %d: %g vs %g",
				i, res.C[center-i], res.C[center+i])
		}
	}
}

func TestAutoCorrelate_NormalizedZeroLag(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	x := make([]float64, 40)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	res, err := AutoCorrelate(x, WithScale(ScaleNormalized))
	if err != nil {
		t.Fatalf("AutoCorrelate: %v", err)
	}

	center := len(res.C) / 2
	if math.Abs(res.C[center]-1) > fftTolerance {
		t.Errorf("normalized zero lag: got %g, want 1", res.C[center])
	}

	for i, v := range res.C {
		if v > 1+fftTolerance {
			t.Errorf("lag %d: normalized value %g exceeds 1", res.Lags[i], v)
		}
	}
}
