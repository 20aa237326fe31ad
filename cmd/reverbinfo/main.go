// Command reverbinfo renders a signal through the Schroeder reverberator and
// reports its topology, decay metrics and level envelope.
//
// Usage:
//
//	reverbinfo [flags]
//
// Examples:
//
//	reverbinfo
//	reverbinfo --decay=3.5 --wet=80
//	reverbinfo --sample-rate=44100 --combs=8 --chain=6 --signal=noise
//	reverbinfo --duration=4s --window=250ms
package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-schroeder/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version    bool          `short:"v" help:"Show version information"`
	SampleRate float64       `name:"sample-rate" default:"48000" help:"Sample rate in Hz"`
	Decay      float64       `default:"2.0" help:"Decay time (T60) in seconds"`
	Wet        float64       `default:"50" help:"Wet level in percent of the wet scale"`
	WetScale   float64       `name:"wet-scale" default:"100" help:"Divisor applied to the wet level"`
	Combs      int           `default:"4" help:"Number of parallel comb filters"`
	Chain      int           `default:"10" help:"Allpass stages per stereo side"`
	Diffusion  float64       `default:"0.1" help:"Allpass gain"`
	Duration   time.Duration `default:"2s" help:"Rendered length"`
	Block      int           `default:"256" help:"Processing block size in samples"`
	Signal     string        `enum:"impulse,noise,sine" default:"impulse" help:"Excitation signal (impulse, noise, sine)"`
	Frequency  float64       `default:"440" help:"Sine frequency in Hz"`
	Peak       float64       `default:"1" help:"Excitation peak level"`
	Window     time.Duration `default:"100ms" help:"Level window length"`
}

func main() {
	args := &CLI{}
	kong.Parse(args,
		kong.Name("reverbinfo"),
		kong.Description("Schroeder reverberator inspector"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter("reverbinfo", "Schroeder reverberator inspector")),
	)

	if args.Version {
		cli.PrintVersion(os.Stdout, "reverbinfo", version)
		return
	}

	if err := run(os.Stdout, args); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
