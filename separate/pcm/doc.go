// Package pcm converts interleaved little-endian PCM byte streams to planar
// float64 waveforms and back.
//
// Two sample formats are supported: signed 16-bit integers scaled by 32767
// and IEEE-754 float32 taken as is. Decoding does not clamp; encoding to
// Int16 wraps values outside [-1, 1] unless WithClipping is given.
package pcm
