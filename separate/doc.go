// Package separate splits a buffered multichannel recording into source
// estimates by spectral masking.
//
// An Engine decodes interleaved PCM into a planar waveform, analyses it with
// a band-limited STFT, hands the magnitude to one Estimator per source in
// fixed-length segments, fuses the returned masks into ratio masks, applies
// them to the complex spectrogram and resynthesises every source by
// overlap-add.
//
//	eng, err := separate.New(separate.DefaultConfig(), []separate.Estimator{vocals, accompaniment})
//	if err != nil { ... }
//	defer eng.Close()
//
//	if _, err := eng.Load(pcmBytes); err != nil { ... }
//	stems, err := eng.Separate(ctx) // stems[i] is encoded like the input
//
// Errors carry one of the markers ErrInitialization, ErrInvalidInput,
// ErrInternal or ErrNotLoaded and can be tested with errors.Is.
package separate
