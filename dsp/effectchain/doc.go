// Package effectchain composes the ring modulator, the diffusion engine, the
// wet/dry blend and the optional decimator into one offline transform:
//
//	input -> ring mod -> diffusion -> wet/dry -> [downsample] -> output
//
// Each stage receives and returns a complete signal.
package effectchain
