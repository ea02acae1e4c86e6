// Package resample provides naive integer decimation of PCM signals.
//
// Downsample keeps every floor(inRate/outRate)-th sample starting at index 0.
// There is no anti-aliasing filter, so content above the new Nyquist
// frequency folds back into the output.
package resample
