package resample

import (
	"errors"
	"math"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

type profile struct {
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

func qualityProfile(q Quality) profile {
	switch q {
	case QualityFast:
		return profile{tapsPerPhase: 16, cutoffScale: 0.88, kaiserBeta: 5.0}
	case QualityBest:
		return profile{tapsPerPhase: 64, cutoffScale: 0.96, kaiserBeta: 9.0}
	default:
		return profile{tapsPerPhase: 32, cutoffScale: 0.92, kaiserBeta: 7.5}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	maxDen       int
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithMaxDenominator caps the reduced denominator. Rate pairs whose exact
// ratio needs a larger one are approximated by continued fractions.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: 4096}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Resampler performs rational sample-rate conversion using a polyphase FIR.
type Resampler struct {
	up   int
	down int

	quality Quality
	phases  [][]float64
	maxLen  int
	delay   int // prototype group delay in upsampled samples

	phase      int
	inputIndex int
	totalIn    int
	history    []float64
}

// New creates a resampler converting inRate to outRate.
func New(inRate, outRate int, opts ...Option) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, ErrInvalidRate
	}

	cfg := newConfig(opts)

	g := gcd(outRate, inRate)
	up, down := outRate/g, inRate/g

	if down > cfg.maxDen || up > cfg.maxDen {
		up, down = approximateRatio(float64(outRate)/float64(inRate), cfg.maxDen)
	}

	return NewRational(up, down, opts...)
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := newConfig(opts)

	p := qualityProfile(cfg.quality)
	if cfg.tapsPerPhase > 0 {
		p.tapsPerPhase = cfg.tapsPerPhase
	}

	taps := designLowpass(up, down, p)
	phases, maxLen := splitPhases(taps, up)

	return &Resampler{
		up:      up,
		down:    down,
		quality: cfg.quality,
		phases:  phases,
		maxLen:  maxLen,
		delay:   (len(taps) - 1) / 2,
		history: make([]float64, 0, max(0, maxLen-1)),
	}, nil
}

// OutputLen returns the number of samples an n-sample signal occupies after
// conversion by up/down: ceil(n*up/down).
func OutputLen(n, up, down int) int {
	if n <= 0 || up <= 0 || down <= 0 {
		return 0
	}

	return (n*up + down - 1) / down
}

// Channels converts every channel from inRate to outRate. The filter delay
// is compensated and each output has OutputLen samples. Equal rates return
// copies.
func Channels(channels [][]float64, inRate, outRate int, opts ...Option) ([][]float64, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, ErrInvalidRate
	}

	out := make([][]float64, len(channels))

	if inRate == outRate {
		for c, ch := range channels {
			out[c] = append([]float64(nil), ch...)
		}

		return out, nil
	}

	r, err := New(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	for c, ch := range channels {
		out[c] = r.aligned(ch)
	}

	return out, nil
}

// aligned converts a complete signal starting from a clean state.
func (r *Resampler) aligned(in []float64) []float64 {
	want := OutputLen(len(in), r.up, r.down)

	r.Reset()
	r.inputIndex = r.delay / r.up
	r.phase = r.delay % r.up

	out := make([]float64, 0, want+r.maxLen)
	out = append(out, r.Process(in)...)
	out = append(out, r.Process(make([]float64, r.delay/r.up+2))...)

	for len(out) < want {
		out = append(out, 0)
	}

	r.Reset()

	return out[:want:want]
}

// Reset clears internal filter state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.inputIndex = 0
	r.totalIn = 0
	r.history = r.history[:0]
}

// Process converts an input block and preserves internal state for streaming.
// Streaming output carries the filter delay; see Delay.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	out := make([]float64, 0, r.PredictOutputLen(len(input)))

	work := make([]float64, len(r.history)+len(input))
	copy(work, r.history)
	copy(work[len(r.history):], input)

	baseIndex := r.totalIn - len(r.history)
	lastAvail := r.totalIn + len(input) - 1

	for r.inputIndex <= lastAvail {
		var y float64

		for k, c := range r.phases[r.phase] {
			idx := r.inputIndex - k
			if idx < baseIndex {
				break
			}

			y += c * work[idx-baseIndex]
		}

		out = append(out, y)

		r.phase += r.down
		r.inputIndex += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)

	keep := min(max(0, r.maxLen-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)

	return out
}

// PredictOutputLen returns the number of samples the next Process call
// produces for inputLen samples.
func (r *Resampler) PredictOutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}

	lastAvail := r.totalIn + inputLen - 1
	i := r.inputIndex
	phase := r.phase

	count := 0
	for i <= lastAvail {
		count++
		phase += r.down
		i += phase / r.up
		phase %= r.up
	}

	return count
}

// Ratio returns reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// Delay returns the streaming group delay in output samples.
func (r *Resampler) Delay() float64 {
	return float64(r.delay) / float64(r.down)
}

// designLowpass returns a Kaiser-windowed sinc prototype with an odd number
// of taps, so the group delay is a whole number of upsampled samples. Taps
// are scaled to a DC gain of up to undo zero-stuffing.
func designLowpass(up, down int, p profile) []float64 {
	n := p.tapsPerPhase * up
	if n%2 == 0 {
		n++
	}

	fc := 0.5 / float64(max(up, down)) * p.cutoffScale
	center := 0.5 * float64(n-1)

	taps := make([]float64, n)

	var sum float64

	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiser(i, n, p.kaiserBeta)
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps
}

// splitPhases distributes prototype taps over up branches: branch p holds
// taps p, p+up, p+2up, ...
func splitPhases(taps []float64, up int) ([][]float64, int) {
	phases := make([][]float64, up)
	maxLen := 0

	for p := range up {
		phase := make([]float64, 0, (len(taps)-p+up-1)/up)
		for i := p; i < len(taps); i += up {
			phase = append(phase, taps[i])
		}

		maxLen = max(maxLen, len(phase))
		phases[p] = phase
	}

	return phases, maxLen
}

func approximateRatio(v float64, maxDen int) (num, den int) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac == 0 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)

		p2 := a*p1 + p0
		q2 := a*q1 + q0

		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num = int(math.Round(p1))
	den = int(math.Round(q1))

	if num <= 0 || den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)

	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1

	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its
// power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := x * x / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
