package stft

// Spectrogram is a complex time-frequency tensor laid out channel, bin, frame.
type Spectrogram struct {
	Channels int
	Bins     int
	Frames   int
	Data     []complex128
}

// NewSpectrogram allocates a zeroed spectrogram.
func NewSpectrogram(channels, bins, frames int) *Spectrogram {
	return &Spectrogram{
		Channels: channels,
		Bins:     bins,
		Frames:   frames,
		Data:     make([]complex128, channels*bins*frames),
	}
}

// Index returns the flat offset of (channel, bin, frame).
func (s *Spectrogram) Index(c, f, t int) int {
	return (c*s.Bins+f)*s.Frames + t
}

// At returns the value at (channel, bin, frame).
func (s *Spectrogram) At(c, f, t int) complex128 {
	return s.Data[s.Index(c, f, t)]
}

// Set stores v at (channel, bin, frame).
func (s *Spectrogram) Set(c, f, t int, v complex128) {
	s.Data[s.Index(c, f, t)] = v
}

// Magnitude holds |X| for every bin of a Spectrogram, same layout.
type Magnitude struct {
	Channels int
	Bins     int
	Frames   int
	Data     []float64
}

// NewMagnitude allocates a zeroed magnitude tensor.
func NewMagnitude(channels, bins, frames int) *Magnitude {
	return &Magnitude{
		Channels: channels,
		Bins:     bins,
		Frames:   frames,
		Data:     make([]float64, channels*bins*frames),
	}
}

// Index returns the flat offset of (channel, bin, frame).
func (m *Magnitude) Index(c, f, t int) int {
	return (c*m.Bins+f)*m.Frames + t
}

// At returns the value at (channel, bin, frame).
func (m *Magnitude) At(c, f, t int) float64 {
	return m.Data[m.Index(c, f, t)]
}
