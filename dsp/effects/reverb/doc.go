// Package reverb provides the all-pass diffusion engine.
//
// Two cascades are available, both appending TailSeconds of silence before
// filtering so the decay has room to ring out:
//   - Diffuser / DiffusionDelay: stage i uses a line of floor(L/(i+d))
//     samples, where L is the base delay in samples and d is the divisor
//     offset.
//   - SchroederAllPass: stage delays drawn uniformly from
//     [0.9*base, 1.5*base) ms through an injected Uniform source.
package reverb
