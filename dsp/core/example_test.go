package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-schroeder/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)
	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)
	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleSecondsToSamples() {
	for i := 0; i < 4; i++ {
		fmt.Print(core.SecondsToSamples(0.03+float64(i)*0.005, 48000), " ")
	}
	fmt.Println()
	// Output:
	// 1440 1679 1920 2160
}
