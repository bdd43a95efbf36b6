package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/BTBurke/shewhart"
	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	pf := pflag.NewFlagSet("simulate", pflag.ContinueOnError)
	loops := pf.Int("loops", 2000, "Number of generated records per chart")
	samples := pf.Int("samples", 25, "Number of samples in each record")
	sampleSize := pf.IntP("sample-size", "n", 5, "Number of measurements in each sample")
	shift := pf.Float64("shift", 0, "Shift of the process mean in standard deviations")
	defects := pf.Float64("defects", 0.1, "Proportion defective of attribute data")
	workers := pf.Int("workers", 4, "Number of parallel workers")
	seed := pf.Int64("seed", 0, "Seed of the generators, 0 seeds from the clock")
	we := pf.BoolP("we-rules", "w", false, "Evaluate the Western Electric rules")
	out := pf.StringP("output", "o", "", "Also write the results to this file")
	level := pf.String("log-level", "info", "Log level: debug, info, warn or error")
	if err := pf.Parse(os.Args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Println(err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	l, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Printf("unknown log level %q\n", *level)
		os.Exit(1)
	}
	shewhart.SetupLogging(l, os.Stderr)

	s := settings{
		Loops:      *loops,
		Samples:    *samples,
		SampleSize: *sampleSize,
		Shift:      *shift,
		Defects:    *defects,
		Workers:    *workers,
		Seed:       *seed,
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}

	kinds := []chart.Kind{
		chart.XbarR{WesternElectric: *we},
		chart.XbarS{WesternElectric: *we},
		chart.NewCUSUM(0, *we),
		chart.PAttribute{},
	}
	start := time.Now()
	var b bytes.Buffer
	for _, kind := range kinds {
		log.Debug().Str("chart", kind.Name()).Int("loops", s.Loops).Msg("start")
		res, err := simulate(context.Background(), kind, s)
		if err != nil {
			log.Fatal().Err(err).Str("chart", kind.Name()).Msg("simulation failed")
		}
		fmt.Println(res)
		b.WriteString(fmt.Sprintf("%s %f\n", res.name, res.AlarmRate()))
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("done")

	if *out != "" {
		if err := ioutil.WriteFile(*out, b.Bytes(), 0644); err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("could not write results")
		}
	}
}
