// Package xcorr provides cross-correlation kernels for spike-train analysis.
//
// The package offers two layers:
//
//   - MulBlocks: a batched broadcast multiply across blocks of a matrix,
//     the building block for pairwise cross-correlation of many channels at
//     once. It performs no reduction; the caller sums over lag or frequency
//     afterwards.
//   - Correlate / AutoCorrelate: FFT-based cross- and auto-correlation of two
//     signals with a lag vector, optional maximum-lag truncation, detrending,
//     and unbiased or normalized scaling.
//
// # Block multiply
//
// MulBlocks treats x as n row-blocks of nx columns and xc as n*n rows of nx
// columns. Block i of x is multiplied element-wise against each of the n rows
// of xc in pair-group i, writing into the matching rows of c:
//
//	c[(i*n+r)*nx + k] = x[i*nx + k] * xc[(i*n+r)*nx + k]
//
// The outer loop over i writes disjoint row ranges of c and runs in parallel;
// use [WithWorkers] to bound the parallelism. Results are identical for any
// worker count.
//
// # Lag correlation
//
// Correlate computes the cross-correlation through the frequency domain:
//
//	res, err := xcorr.Correlate(x, y,
//		xcorr.WithMaxLags(50),
//		xcorr.WithScale(xcorr.ScaleNormalized),
//		xcorr.WithDetrend(detrend.Mean))
//
// res.Lags runs from 1-maxlags to maxlags-1 and res.C holds the matching
// correlation values.
package xcorr
