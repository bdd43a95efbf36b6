package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BTBurke/shewhart"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// ExitNotInControl is the exit status when the chart shows the process is not in statistical control
const ExitNotInControl int = 100

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := shewhart.ParseArgs(args)
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(stderr, "Could not parse configuration: %s\n\nUse shewhart --help for options\n", err)
			return 1
		}
		return 0
	}

	cfg, errs := shewhart.NewConfig(opts...)
	if len(errs) > 0 {
		fmt.Fprintln(stderr, "Error in config:")
		for _, e := range errs {
			fmt.Fprintln(stderr, e)
		}
		return 1
	}
	shewhart.SetupLogging(cfg.LogLevel, stderr)

	reporter := shewhart.NewErrorReporter(cfg)
	defer reporter.Wait()

	inControl, err := shewhart.Run(cfg, stdout)
	if err != nil {
		if shewhart.ReportUnexpected(reporter, err) {
			log.Error().Err(err).Msg("unexpected error")
		} else {
			log.Error().Err(err).Msg("could not evaluate chart")
		}
		return 1
	}
	if !inControl {
		return ExitNotInControl
	}
	return 0
}
