package shewhart

import (
	"io"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/BTBurke/shewhart/pkg/constants"
	"github.com/BTBurke/shewhart/pkg/csvimport"
	"github.com/BTBurke/shewhart/pkg/plot"
	"github.com/BTBurke/shewhart/pkg/record"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Evaluation is a computed chart with the record it was computed from
type Evaluation struct {
	Record *record.Record
	Result *chart.Result
}

// Run evaluates the measurements file named in c, writes the report to w and returns whether the
// process is in control.
func Run(c Config, w io.Writer) (bool, error) {
	log.Debug().Str("input", c.Input).Msg("reading measurements")
	times, values, err := csvimport.ReadFile(c.Input)
	if err != nil {
		return false, err
	}

	ev, err := Evaluate(c, times, values)
	if err != nil {
		return false, err
	}

	if err := NewReport(c, ev.Result).Write(w, c.Output); err != nil {
		return false, err
	}
	if c.Plot != "" {
		if err := ev.plot(c); err != nil {
			return false, err
		}
	}
	return ev.Result.InControl, nil
}

// Evaluate groups values into samples of the configured size and computes the configured chart
// with the standard constant tables.
func Evaluate(c Config, times []record.Time, values []float64) (*Evaluation, error) {
	kind, err := c.Kind()
	if err != nil {
		return nil, err
	}
	_, isAttribute := kind.(chart.PAttribute)

	rec, err := record.ImportTimesValues(values, times, c.SampleSize, isAttribute)
	if err != nil {
		return nil, errors.Wrap(err, "failed to import measurements")
	}
	log.Debug().
		Int("measurements", len(values)).
		Int("samples", rec.Len()).
		Int("sample_size", c.SampleSize).
		Bool("time_info", rec.HasTimeInfo()).
		Msg("imported record")

	res, err := chart.ComputeLimits(rec, kind, constants.Standard())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compute %s chart", kind.Name())
	}
	ev := &Evaluation{Record: rec, Result: res}
	ev.log()
	return ev, nil
}

func (ev *Evaluation) plot(c Config) error {
	axis, err := ev.Record.TimeAxis()
	if err != nil {
		return errors.Wrap(err, "failed to build plot axis")
	}
	o := plot.Options{Title: c.Title, Units: c.Units}
	if ev.Record.HasTimeInfo() {
		o.XLabel = "Time (s)"
	}
	paths, err := plot.WriteFiles(c.Plot, ev.Result, axis, o)
	for _, p := range paths {
		log.Info().Str("path", p).Msg("wrote plot")
	}
	return err
}

func (ev *Evaluation) log() {
	samples := ev.Record.Samples()
	for _, s := range ev.Result.Series {
		for _, i := range s.OutOfLimits {
			l := s.LimitsAt(i)
			log.Warn().
				Str("series", s.Name).
				Int("sample", i).
				Float64("value", s.Values[i]).
				Float64("lcl", l.Lower).
				Float64("ucl", l.Upper).
				Msg("sample outside control limits")
		}
	}
	for _, v := range ev.Result.Violations {
		for _, i := range v.Indices {
			log.Warn().
				Str("rule", v.Rule.Name).
				Int("sample", i).
				Stringer("time", samples[i].Time()).
				Msg("western electric rule violated")
		}
	}
	log.Info().
		Str("chart", ev.Result.Kind).
		Int("samples", len(samples)).
		Bool("in_control", ev.Result.InControl).
		Msg("chart evaluated")
}
