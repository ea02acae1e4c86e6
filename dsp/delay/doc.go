// Package delay provides circular delay lines and the all-pass section built
// on top of them.
//
// The all-pass section is the diffusion primitive used by the reverb
// cascades. For an input x, a feedback gain g and a line of M samples it
// computes
//
//	y[n] = -g*x[n] + w[n-M]
//	w[n] = x[n] + g*y[n]
//
// where y is truncated toward zero to int32 before being fed back.
package delay
