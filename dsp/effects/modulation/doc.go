// Package modulation provides the LFO-swept ring modulator stage.
//
// The modulator multiplies the dry PCM signal by a sine carrier whose
// frequency is pushed up to three octaves above its base by a low-frequency
// oscillator, then blends the result with the dry signal.
package modulation
