package separate_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-stems/separate"
	"github.com/cwbudde/algo-stems/separate/pcm"
)

func ExampleEngine_Separate() {
	cfg := separate.DefaultConfig()

	// A pass-through first stem and a muted second one.
	eng, err := separate.New(cfg, []separate.Estimator{
		separate.ConstantEstimator(1),
		separate.ConstantEstimator(0),
	}, separate.WithLogger(quietLogger()))
	if err != nil {
		panic(err)
	}
	defer eng.Close()

	// One second of 16-bit stereo silence.
	in := make([]byte, cfg.SampleRate*cfg.SignalInfo().Stride())
	if _, err := eng.Load(in); err != nil {
		panic(err)
	}

	stems, err := eng.Separate(context.Background())
	if err != nil {
		panic(err)
	}

	info := cfg.SignalInfo()
	fmt.Println(len(stems), info.Duration(len(in)), info.Duration(len(stems[0])) >= info.Duration(len(in)))
	fmt.Println(eng.State(), pcm.Int16)
	// Output:
	// 2 1s true
	// loaded s16le
}
