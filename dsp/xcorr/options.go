package xcorr

import (
	"runtime"

	"github.com/cwbudde/algo-spike/dsp/detrend"
)

// ScaleType selects how lag-correlation values are scaled.
type ScaleType int

const (
	// ScaleNone returns raw correlation values.
	ScaleNone ScaleType = iota

	// ScaleUnbiased divides each lag by the number of overlapping samples
	// observed at that lag (lsize - |lag|).
	ScaleUnbiased

	// ScaleNormalized divides by sqrt((x.x)(y.y)), producing values in
	// [-1, 1] for real signals.
	ScaleNormalized
)

type config struct {
	workers int
	maxLags int // 0 means the full signal length
	scale   ScaleType
	detrend detrend.Func
}

// Option configures a correlation call.
type Option func(*config)

func defaultConfig() config {
	return config{
		workers: runtime.GOMAXPROCS(0),
		detrend: detrend.None,
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithWorkers bounds the number of goroutines used by [MulBlocks].
// Values below 1 keep the default of runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithMaxLags limits the lag range of [Correlate] and [AutoCorrelate] to
// 1-m .. m-1. The default covers the full padded signal length.
func WithMaxLags(m int) Option {
	return func(cfg *config) {
		cfg.maxLags = m
	}
}

// WithScale selects the scaling applied to lag-correlation values.
func WithScale(s ScaleType) Option {
	return func(cfg *config) {
		cfg.scale = s
	}
}

// WithDetrend applies f to both inputs before correlating.
func WithDetrend(f detrend.Func) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.detrend = f
		}
	}
}
