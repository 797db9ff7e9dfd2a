// Command stemsplit separates a stereo recording into vocal and accompaniment
// stems with ONNX mask estimation models.
//
// Usage:
//
//	stemsplit separate [flags] <input.pcm|input.wav>
//	stemsplit window [flags]
//
// Raw PCM input is interleaved little-endian audio whose layout is given by
// flags or the config file. WAV input carries its own layout. One output file
// per configured model is written to the output directory, named after the
// model and using the input's container.
//
// Examples:
//
//	stemsplit separate -c stemsplit.yaml song.wav
//	stemsplit separate --format f32le --rate 44100 --runtime /usr/lib/libonnxruntime.so song.pcm
//	stemsplit window --size 4096 --hop 1024
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/apex/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		log.WithError(err).Error("stemsplit failed")
		os.Exit(1)
	}
}
