package pcm

// Waveform is planar audio: Channels[c][i] is sample i of channel c.
type Waveform struct {
	SampleRate int
	Channels   [][]float64
}

// NewWaveform allocates a silent waveform.
func NewWaveform(sampleRate, channels, samples int) *Waveform {
	w := &Waveform{SampleRate: sampleRate, Channels: make([][]float64, channels)}
	for c := range w.Channels {
		w.Channels[c] = make([]float64, samples)
	}
	return w
}

// Len returns the per-channel sample count.
func (w *Waveform) Len() int {
	if w == nil || len(w.Channels) == 0 {
		return 0
	}
	return len(w.Channels[0])
}

// Energy returns the sum of squared samples over all channels.
func (w *Waveform) Energy() float64 {
	if w == nil {
		return 0
	}

	sum := 0.0
	for _, ch := range w.Channels {
		for _, v := range ch {
			sum += v * v
		}
	}
	return sum
}
