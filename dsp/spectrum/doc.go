// Package spectrum provides the frequency-domain analysis used to inspect
// processed PCM signals.
//
// FFTs are computed with algo-fft plans and bin magnitudes use the
// algo-vecmath kernels; frames are Hann windowed through dsp/window. Single-frequency probes use the Goertzel recurrence,
// which is cheaper than a full transform when only a few tones matter.
package spectrum
