package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/BTBurke/shewhart/pkg/constants"
	"github.com/BTBurke/shewhart/pkg/record"
	"github.com/BTBurke/shewhart/pkg/rng"
	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/sync/errgroup"
)

// settings of one simulation run
type settings struct {
	Loops      int
	Samples    int
	SampleSize int
	// Shift moves the process mean by this many standard deviations
	Shift   float64
	Defects float64
	Workers int
	Seed    int64
}

type results struct {
	name   string
	mu     sync.Mutex
	trials int
	alarms int
	// first flagged sample of every alarmed trial, 1-based
	runLength *hdrhistogram.Histogram
}

func newResults(name string, samples int) *results {
	return &results{
		name:      name,
		runLength: hdrhistogram.New(1, int64(samples), 3),
	}
}

func (r *results) merge(trials int, alarms int, h *hdrhistogram.Histogram) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trials += trials
	r.alarms += alarms
	r.runLength.Merge(h)
}

// AlarmRate is the fraction of trials in which the chart flagged the process
func (r *results) AlarmRate() float64 {
	if r.trials == 0 {
		return 0
	}
	return float64(r.alarms) / float64(r.trials)
}

func (r *results) String() string {
	return fmt.Sprintf("%-10s trials=%d alarms=%d p=%1.5f run-length p50=%d p90=%d",
		r.name, r.trials, r.alarms, r.AlarmRate(), r.runLength.ValueAtQuantile(50.0), r.runLength.ValueAtQuantile(90.0))
}

// simulate evaluates s.Loops generated records with kind, spread over s.Workers goroutines.  Each
// worker owns its generator and records, so nothing but the results is shared.
func simulate(ctx context.Context, kind chart.Kind, s settings) (*results, error) {
	res := newResults(kind.Name(), s.Samples)
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		loops := s.Loops / workers
		if w < s.Loops%workers {
			loops++
		}
		seed := s.Seed + int64(w)
		g.Go(func() error {
			gen := generator(kind, s, seed)
			h := hdrhistogram.New(1, int64(s.Samples), 3)
			alarms := 0
			for i := 0; i < loops; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				first, err := trial(kind, gen, s)
				if err != nil {
					return err
				}
				if first >= 0 {
					alarms++
					if err := h.RecordValue(int64(first + 1)); err != nil {
						return err
					}
				}
			}
			res.merge(loops, alarms, h)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func generator(kind chart.Kind, s settings, seed int64) rng.RNG {
	if _, ok := kind.(chart.PAttribute); ok {
		return rng.NewSeededBernoulliRNG(s.Defects, seed)
	}
	return rng.NewSeededNormalRNG(s.Shift, 1.0, seed)
}

// trial builds one record from gen and returns the first flagged sample, or -1 when the chart is
// in control
func trial(kind chart.Kind, gen rng.RNG, s settings) (int, error) {
	_, isAttribute := kind.(chart.PAttribute)
	values := rng.Fill(gen, s.Samples*s.SampleSize)
	rec, err := record.ImportTimesValues(values, nil, s.SampleSize, isAttribute)
	if err != nil {
		return 0, err
	}
	res, err := chart.ComputeLimits(rec, kind, constants.Standard())
	if err != nil {
		return 0, err
	}
	return firstFlagged(res), nil
}

func firstFlagged(res *chart.Result) int {
	if res.InControl {
		return -1
	}
	first := -1
	update := func(i int) {
		if first < 0 || i < first {
			first = i
		}
	}
	for _, s := range res.Series {
		for _, i := range s.OutOfLimits {
			update(i)
		}
	}
	for _, v := range res.Violations {
		for _, i := range v.Indices {
			update(i)
		}
	}
	return first
}
