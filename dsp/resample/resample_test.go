package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-stems/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	if _, err := NewRational(0, 1); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("NewRational(0, 1) error = %v, want ErrInvalidRatio", err)
	}

	if _, err := NewRational(1, 0); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("NewRational(1, 0) error = %v, want ErrInvalidRatio", err)
	}

	if _, err := New(0, 48000); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("New(0, 48000) error = %v, want ErrInvalidRate", err)
	}

	if _, err := Channels(nil, 44100, -1); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("Channels error = %v, want ErrInvalidRate", err)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		in, out  int
		up, down int
	}{
		{44100, 48000, 160, 147},
		{48000, 44100, 147, 160},
		{48000, 96000, 2, 1},
		{44100, 22050, 1, 2},
	}

	for _, tc := range tests {
		r, err := New(tc.in, tc.out)
		if err != nil {
			t.Fatalf("New(%d, %d) error = %v", tc.in, tc.out, err)
		}

		up, down := r.Ratio()
		if up != tc.up || down != tc.down {
			t.Fatalf("New(%d, %d) ratio = %d/%d, want %d/%d", tc.in, tc.out, up, down, tc.up, tc.down)
		}
	}

	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	if up, down := r.Ratio(); up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestRatioApproximation(t *testing.T) {
	r, err := New(44101, 44100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	up, down := r.Ratio()
	if up > 4096 || down > 4096 {
		t.Fatalf("ratio %d/%d exceeds the denominator cap", up, down)
	}

	if d := math.Abs(float64(up)/float64(down) - 44100.0/44101.0); d > 1e-4 {
		t.Fatalf("ratio %d/%d is %g away from the requested conversion", up, down, d)
	}
}

func TestPredictOutputLenMatchesProcess(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := testutil.DeterministicSine(1000, 48000, 1, 257)

	want := r.PredictOutputLen(len(in))
	if got := len(r.Process(in)); got != want {
		t.Fatalf("len(out) = %d, want %d", got, want)
	}
}

func TestStreamingMatchesSingleBlock(t *testing.T) {
	in := testutil.DeterministicNoise(7, 0.5, 3000)

	whole, err := New(44100, 48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := whole.Process(in)

	chunked, err := New(44100, 48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var got []float64
	for start := 0; start < len(in); start += 333 {
		got = append(got, chunked.Process(in[start:min(start+333, len(in))])...)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestDelay(t *testing.T) {
	r, err := New(44100, 22050)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// 32 taps rounded up to 33, centered on tap 16.
	if got := r.Delay(); got != 8 {
		t.Fatalf("Delay() = %g, want 8", got)
	}
}

func TestOutputLen(t *testing.T) {
	tests := []struct {
		n, up, down, want int
	}{
		{0, 160, 147, 0},
		{44100, 160, 147, 48000},
		{1000, 160, 147, 1089},
		{1001, 1, 2, 501},
		{5, 2, 1, 10},
		{5, 0, 1, 0},
	}

	for _, tc := range tests {
		if got := OutputLen(tc.n, tc.up, tc.down); got != tc.want {
			t.Fatalf("OutputLen(%d, %d, %d) = %d, want %d", tc.n, tc.up, tc.down, got, tc.want)
		}
	}
}

func TestChannelsSameRateCopies(t *testing.T) {
	in := [][]float64{{1, 2, 3}, {4, 5, 6}}

	out, err := Channels(in, 44100, 44100)
	if err != nil {
		t.Fatalf("Channels() error = %v", err)
	}

	out[0][0] = 99

	if in[0][0] != 1 {
		t.Fatal("Channels() aliased its input")
	}

	testutil.RequireSliceNearlyEqual(t, out[1], in[1], 0)
}

func TestChannelsTracksSine(t *testing.T) {
	tests := []struct {
		in, out int
	}{
		{44100, 48000},
		{48000, 44100},
		{44100, 22050},
		{22050, 44100},
	}

	for _, tc := range tests {
		const freq = 1000.0

		x := testutil.DeterministicSine(freq, float64(tc.in), 0.5, 4000)

		out, err := Channels([][]float64{x, x}, tc.in, tc.out)
		if err != nil {
			t.Fatalf("Channels(%d -> %d) error = %v", tc.in, tc.out, err)
		}

		r, _ := New(tc.in, tc.out)
		up, down := r.Ratio()

		wantLen := OutputLen(len(x), up, down)
		if len(out) != 2 || len(out[0]) != wantLen || len(out[1]) != wantLen {
			t.Fatalf("Channels(%d -> %d) lengths = %d/%d, want %d", tc.in, tc.out, len(out[0]), len(out[1]), wantLen)
		}

		ideal := testutil.DeterministicSine(freq, float64(tc.out), 0.5, wantLen)

		edge := 64
		d, err := testutil.MaxAbsDiff(out[0][edge:wantLen-edge], ideal[edge:wantLen-edge])
		if err != nil {
			t.Fatal(err)
		}

		if d > 2e-3 {
			t.Fatalf("Channels(%d -> %d) deviates from the ideal sine by %g", tc.in, tc.out, d)
		}
	}
}

func TestChannelsPreservesDC(t *testing.T) {
	x := make([]float64, 2000)
	for i := range x {
		x[i] = 1
	}

	out, err := Channels([][]float64{x}, 44100, 48000, WithQuality(QualityBest))
	if err != nil {
		t.Fatalf("Channels() error = %v", err)
	}

	for i := 100; i < len(out[0])-100; i++ {
		if math.Abs(out[0][i]-1) > 1e-3 {
			t.Fatalf("out[%d] = %g, want 1", i, out[0][i])
		}
	}
}

func TestChannelsEmpty(t *testing.T) {
	out, err := Channels([][]float64{{}}, 48000, 44100)
	if err != nil {
		t.Fatalf("Channels() error = %v", err)
	}

	if len(out) != 1 || len(out[0]) != 0 {
		t.Fatalf("Channels(empty) = %v, want one empty channel", out)
	}
}
