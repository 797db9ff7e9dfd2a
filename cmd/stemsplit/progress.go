package main

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/cwbudde/algo-stems/separate"
)

// progressBar counts completed pipeline steps: analysis, one estimate per
// source, fusion and one synthesis per source.
type progressBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgressBar(out io.Writer, sources int) *progressBar {
	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(out))
	bar := p.AddBar(int64(2+2*sources),
		mpb.PrependDecorators(
			decor.Name("Separating: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)

	return &progressBar{p: p, bar: bar}
}

// Update is a separate.ProgressFunc.
func (b *progressBar) Update(_ separate.Stage, done, _ int) {
	if done > 0 {
		b.bar.Increment()
	}
}

// Wait completes the bar and flushes it.
func (b *progressBar) Wait() {
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
