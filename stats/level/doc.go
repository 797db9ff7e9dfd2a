// Package level measures the loudness-independent level of sample blocks:
// peak, RMS, DC offset and crest factor, plus a count of samples that would
// not survive integer encoding without wrapping.
package level
