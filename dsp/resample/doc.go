// Package resample converts sample rates with a rational polyphase FIR.
//
// A Resampler is stateful and may be fed block by block. For whole signals,
// Channels runs one resampler per channel with the filter delay removed, so
// output sample m lands on input time m*inRate/outRate and the result has
// exactly OutputLen samples.
//
// Quality modes trade CPU for stopband attenuation:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
