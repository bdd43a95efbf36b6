package shewhart

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/BTBurke/shewhart/pkg/metric"
	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// Report is the outcome of one chart evaluation, written as text or YAML
type Report struct {
	Title           string             `yaml:"title"`
	Units           string             `yaml:"units,omitempty"`
	Chart           string             `yaml:"chart"`
	SampleSize      int                `yaml:"sample-size"`
	Samples         int                `yaml:"samples"`
	InControl       bool               `yaml:"in-control"`
	WesternElectric bool               `yaml:"western-electric"`
	Violations      []ViolationReport  `yaml:"violations,omitempty"`
	OutOfLimits     map[string][]int   `yaml:"out-of-limits,omitempty"`
	Limits          map[string]float64 `yaml:"limits"`
}

// ViolationReport lists the samples flagged by one Western Electric rule
type ViolationReport struct {
	Rule    string `yaml:"rule"`
	Samples []int  `yaml:"samples"`
}

// NewReport summarizes res for the configured title and units
func NewReport(c Config, res *chart.Result) Report {
	r := Report{
		Title:           c.Title,
		Units:           c.Units,
		Chart:           res.Kind,
		SampleSize:      res.SampleSize,
		InControl:       res.InControl,
		WesternElectric: res.WesternElectricChecked,
		Limits:          Metrics(res).Map(),
	}
	if len(res.Series) > 0 {
		r.Samples = len(res.Series[0].Values)
	}
	for _, v := range res.Violations {
		r.Violations = append(r.Violations, ViolationReport{Rule: v.Rule.Name, Samples: v.Indices})
	}
	for _, s := range res.Series {
		if len(s.OutOfLimits) == 0 {
			continue
		}
		if r.OutOfLimits == nil {
			r.OutOfLimits = make(map[string][]int)
		}
		r.OutOfLimits[s.Name] = s.OutOfLimits
	}
	return r
}

// Metrics flattens the limits of every series of res into named values such as
// xbar-r[series=means value=ucl].  Sigma zone lines are included for the means series.
func Metrics(res *chart.Result) *metric.Set {
	set := metric.NewSet()
	for _, s := range res.Series {
		n := metric.NewName(res.Kind, map[string]string{"series": s.Name})
		set.Add(n.With(map[string]string{"value": "center"}), s.Limits.Center)
		set.Add(n.With(map[string]string{"value": "ucl"}), s.Limits.Upper)
		set.Add(n.With(map[string]string{"value": "lcl"}), s.Limits.Lower)
		if s.Name != chart.Means {
			continue
		}
		for _, sigmas := range []float64{1, 2} {
			upper, lower := s.Limits.Zone(sigmas)
			set.Add(n.With(map[string]string{"value": fmt.Sprintf("upper-%gsigma", sigmas)}), upper)
			set.Add(n.With(map[string]string{"value": fmt.Sprintf("lower-%gsigma", sigmas)}), lower)
		}
	}
	return set
}

// Write renders the report to w in the given format
func (r Report) Write(w io.Writer, format OutputFormat) error {
	switch format {
	case YAMLOutput:
		data, err := yaml.Marshal(r)
		if err != nil {
			return errors.Wrap(err, "failed to marshal report")
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "failed to write report")
	case TextOutput, "":
		_, err := io.WriteString(w, r.String())
		return errors.Wrap(err, "failed to write report")
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "    Chart: %s, %d samples of %d\n", r.Chart, r.Samples, r.SampleSize)
	if r.Units != "" {
		fmt.Fprintf(&b, "    Units: %s\n", r.Units)
	}
	fmt.Fprintf(&b, "    In control: %t\n", r.InControl)

	keys := make([]string, 0, len(r.Limits))
	for k := range r.Limits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("Limits\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s %v\n", k, r.Limits[k])
	}

	if len(r.OutOfLimits) > 0 {
		b.WriteString("Out of limits\n")
		series := make([]string, 0, len(r.OutOfLimits))
		for s := range r.OutOfLimits {
			series = append(series, s)
		}
		sort.Strings(series)
		for _, s := range series {
			fmt.Fprintf(&b, "    %s: %s\n", s, joinInts(r.OutOfLimits[s]))
		}
	}

	if r.WesternElectric {
		b.WriteString("Western Electric rules\n")
		if len(r.Violations) == 0 {
			b.WriteString("    passing\n")
		}
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "    %s: %s\n", v.Rule, joinInts(v.Samples))
		}
	}
	return b.String()
}

func joinInts(ints []int) string {
	s := make([]string, len(ints))
	for i, v := range ints {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, " ")
}
