package xcorr

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
)

// Errors returned by correlation functions.
var (
	ErrEmptyInput        = errors.New("xcorr: empty input")
	ErrInvalidBlockCount = errors.New("xcorr: block count must be positive")
	ErrInvalidColumns    = errors.New("xcorr: column count must be positive")
	ErrShapeMismatch     = errors.New("xcorr: shape mismatch")
	ErrInvalidMaxLags    = errors.New("xcorr: maxlags out of range")
)

// Element is the closed set of element types supported by the block
// correlator.
type Element interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// MulBlocks multiplies each row-block of x against its pair-group in xc,
// writing the element-wise products into c.
//
// x is a row-major n×nx matrix, xc and c are row-major (n·n)×nx matrices.
// For every block i, row r and column k:
//
//	c[(i*n+r)*nx + k] = x[i*nx + k] * xc[(i*n+r)*nx + k]
//
// c is written in place; x and xc are read-only. The outer block loop is
// parallelized across up to [WithWorkers] goroutines, scoped to this call.
func MulBlocks[T Element](c, x, xc []T, n, nx int, opts ...Option) error {
	if n < 1 {
		return ErrInvalidBlockCount
	}
	if nx < 1 {
		return ErrInvalidColumns
	}
	if len(x) != n*nx {
		return fmt.Errorf("%w: len(x) = %d, want n*nx = %d", ErrShapeMismatch, len(x), n*nx)
	}
	if len(xc) != n*n*nx {
		return fmt.Errorf("%w: len(xc) = %d, want n*n*nx = %d", ErrShapeMismatch, len(xc), n*n*nx)
	}
	if len(c) != n*n*nx {
		return fmt.Errorf("%w: len(c) = %d, want n*n*nx = %d", ErrShapeMismatch, len(c), n*n*nx)
	}

	cfg := applyOptions(opts...)
	MulBlocksTo(c, x, xc, n, nx, cfg.workers)
	return nil
}

// MulBlocksTo is the unchecked fast path of [MulBlocks]. Shapes must satisfy
// the contract documented there; workers < 2 forces the sequential path.
func MulBlocksTo[T Element](c, x, xc []T, n, nx, workers int) {
	if workers > n {
		workers = n
	}
	if workers < 2 {
		for i := 0; i < n; i++ {
			mulPairGroup(c, x, xc, i, n, nx)
		}
		return
	}

	// Static chunking: row cost is uniform, so equal block ranges balance
	// well and keep scheduling overhead at one goroutine per chunk.
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				mulPairGroup(c, x, xc, i, n, nx)
			}
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
}

// mulPairGroup broadcasts block i of x against pair-group i of xc. Each call
// owns rows [i*n, (i+1)*n) of c, which is what makes the outer loop safe to
// parallelize.
func mulPairGroup[T Element](c, x, xc []T, i, n, nx int) {
	xRow := x[i*nx : (i+1)*nx]
	for r := 0; r < n; r++ {
		j := i*n + r
		mulRow(c[j*nx:(j+1)*nx], xRow, xc[j*nx:(j+1)*nx])
	}
}

// mulRow computes dst = a * b element-wise. float64 rows dispatch to the
// SIMD-backed vecmath implementation; the other element types use the scalar
// loop, as vecmath only exposes float64 entry points.
func mulRow[T Element](dst, a, b []T) {
	if d, ok := any(dst).([]float64); ok {
		vecmath.MulBlock(d, any(a).([]float64), any(b).([]float64))
		return
	}

	for k := range dst {
		dst[k] = a[k] * b[k]
	}
}
