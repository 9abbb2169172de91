package fuzztests

import (
	"context"
	"testing"
	"time"

	"rill/internal/driver"
	"rill/internal/format"
	"rill/internal/testkit"
)

// pipelineTimeout is the maximum time allowed for one input. If the pipeline
// takes longer, it indicates a potential infinite loop.
const pipelineTimeout = 5 * time.Second

func FuzzPipelineNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fn f() { { { { } } } }")) // вложенные блоки
	f.Add([]byte("fn f(,,,) -> -> i32 {"))
	f.Add([]byte("fn f() -> i32 { ret x(y(z(1, 2), 3)); }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan error, 1)
		go func() {
			fs, res, err := driver.RunSource(context.Background(), "fuzz.rl", input, driver.Options{})
			if err == nil {
				err = testkit.CheckSpanInvariants(res.Builder, res.AST, fs.Get(res.FileID))
			}
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("pipeline: %v", err)
			}
		case <-time.After(pipelineTimeout):
			t.Fatalf("pipeline timed out after %v on input of %d bytes", pipelineTimeout, len(input))
		}
	})
}

func FuzzFormatRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs, res, err := driver.RunSource(context.Background(), "fuzz.rl", clampInput(input), driver.Options{Stage: driver.StageParse})
		if err != nil || res.Bag.HasErrors() {
			return
		}
		if ok, msg := format.CheckRoundTrip(fs.Get(res.FileID), format.Options{}); !ok {
			t.Fatalf("%s\ninput: %q", msg, input)
		}
	})
}
