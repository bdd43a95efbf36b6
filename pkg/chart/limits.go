package chart

import (
	"fmt"
	"math"

	"github.com/BTBurke/shewhart/pkg/constants"
	"github.com/BTBurke/shewhart/pkg/record"
)

// Names of the plotted series
const (
	Means       = "means"
	Ranges      = "ranges"
	Stdevs      = "stdevs"
	CUSUMUpper  = "cusum-upper"
	CUSUMLower  = "cusum-lower"
	Proportions = "proportions"
)

// Limits are the center line and the upper and lower control limits of a series
type Limits struct {
	Center float64
	Upper  float64
	Lower  float64
}

// Contains reports whether v lies within [Lower, Upper].  NaN is never contained.
func (l Limits) Contains(v float64) bool {
	return l.Lower <= v && v <= l.Upper
}

// Zone returns the reference lines at sigmas/3 of the distance between the center line and each
// control limit, e.g. Zone(1) gives the +-1 sigma lines of a 3 sigma chart.
func (l Limits) Zone(sigmas float64) (upper float64, lower float64) {
	return l.Center + (l.Upper-l.Center)*sigmas/3.0, l.Center + (l.Lower-l.Center)*sigmas/3.0
}

// Series is one plotted statistic with its limits.  PerPoint is set when limits differ between
// samples (p charts), otherwise Limits applies to every point.
type Series struct {
	Name      string
	Values    []float64
	Limits    Limits
	PerPoint  []Limits
	InControl bool
	// OutOfLimits holds the indices of values outside their control limits
	OutOfLimits []int
}

// LimitsAt returns the limits that apply to point i
func (s Series) LimitsAt(i int) Limits {
	if s.PerPoint != nil {
		return s.PerPoint[i]
	}
	return s.Limits
}

func newSeries(name string, values []float64, limits Limits, perPoint []Limits) Series {
	s := Series{Name: name, Values: values, Limits: limits, PerPoint: perPoint, InControl: true}
	for i, v := range values {
		if !s.LimitsAt(i).Contains(v) {
			s.InControl = false
			s.OutOfLimits = append(s.OutOfLimits, i)
		}
	}
	return s
}

// Result is everything a chart exposes to a renderer
type Result struct {
	Kind       string
	SampleSize int
	Series     []Series
	// WesternElectricChecked is true when run rules were evaluated for this chart
	WesternElectricChecked bool
	Violations             []Violation
	InControl              bool
}

// PassingWesternElectric is true unless any run rule flagged a sample
func (r *Result) PassingWesternElectric() bool {
	return len(r.Violations) == 0
}

// Find returns the series called name
func (r *Result) Find(name string) (Series, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// ComputeLimits evaluates rec as a chart of the given kind with factors from tables and seals rec
// when it succeeds.  The chart is in control when every value of every series lies within its
// limits and, when enabled, no Western Electric rule is violated.
func ComputeLimits(rec *record.Record, kind Kind, tables constants.Tables) (*Result, error) {
	if rec == nil || rec.Len() == 0 {
		return nil, record.InvariantError{Msg: "a chart requires a record with at least one sample"}
	}
	size, err := rec.SampleSize()
	if err != nil {
		return nil, err
	}
	res := &Result{SampleSize: size}

	switch k := kind.(type) {
	case XbarR:
		err = res.variable(rec, tables, k.WesternElectric, rangesSeries)
	case XbarS:
		err = res.variable(rec, tables, k.WesternElectric, stdevsSeries)
	case CUSUM:
		err = res.variable(rec, tables, k.WesternElectric, rangesSeries, cusumSeries(k))
	case PAttribute:
		err = res.attribute(rec)
	default:
		err = KindError{Msg: fmt.Sprintf("unsupported chart kind %T", kind)}
	}
	if err != nil {
		return nil, err
	}
	// a record is read-only once limits have been computed from it
	if err := rec.Seal(); err != nil {
		return nil, err
	}
	res.Kind = kind.Name()

	res.InControl = res.PassingWesternElectric()
	for _, s := range res.Series {
		res.InControl = res.InControl && s.InControl
	}
	return res, nil
}

type seriesFunc func(rec *record.Record, n int, tables constants.Tables) ([]Series, error)

func (res *Result) variable(rec *record.Record, tables constants.Tables, westernElectric bool, extra ...seriesFunc) error {
	if !rec.IsVariable() {
		return KindError{Msg: "variable control charts require variable data"}
	}
	means, err := rec.Means()
	if err != nil {
		return err
	}
	mom, err := rec.MeanOfMeans()
	if err != nil {
		return err
	}
	a2r, err := a2r(rec, res.SampleSize, tables)
	if err != nil {
		return err
	}
	res.Series = append(res.Series, newSeries(Means, means, Limits{Center: mom, Upper: mom + a2r, Lower: mom - a2r}, nil))

	if westernElectric {
		res.WesternElectricChecked = true
		res.Violations = EvaluateWesternElectric(means, mom, a2r, WesternElectricRules()...)
	}

	for _, f := range extra {
		series, err := f(rec, res.SampleSize, tables)
		if err != nil {
			return err
		}
		res.Series = append(res.Series, series...)
	}
	return nil
}

// a2r is the distance between the center line and the control limits of the X̄ chart
func a2r(rec *record.Record, n int, tables constants.Tables) (float64, error) {
	a2, err := tables.Lookup(constants.A2, n)
	if err != nil {
		return 0, err
	}
	mor, err := rec.MeanOfRanges()
	if err != nil {
		return 0, err
	}
	return a2 * mor, nil
}

func rangesSeries(rec *record.Record, n int, tables constants.Tables) ([]Series, error) {
	ranges, err := rec.Ranges()
	if err != nil {
		return nil, err
	}
	mor, err := rec.MeanOfRanges()
	if err != nil {
		return nil, err
	}
	d4, err := tables.Lookup(constants.D4, n)
	if err != nil {
		return nil, err
	}
	d3, err := tables.Lookup(constants.D3, n)
	if err != nil {
		return nil, err
	}
	return []Series{newSeries(Ranges, ranges, Limits{Center: mor, Upper: mor * d4, Lower: mor * d3}, nil)}, nil
}

func stdevsSeries(rec *record.Record, n int, tables constants.Tables) ([]Series, error) {
	stdevs, err := rec.Stdevs()
	if err != nil {
		return nil, err
	}
	mos, err := rec.MeanOfStdevs()
	if err != nil {
		return nil, err
	}
	b4, err := tables.Lookup(constants.B4, n)
	if err != nil {
		return nil, err
	}
	b3, err := tables.Lookup(constants.B3, n)
	if err != nil {
		return nil, err
	}
	return []Series{newSeries(Stdevs, stdevs, Limits{Center: mos, Upper: mos * b4, Lower: mos * b3}, nil)}, nil
}

func (res *Result) attribute(rec *record.Record) error {
	if !rec.IsAttribute() {
		return KindError{Msg: "p charts require attribute data"}
	}
	proportions, err := rec.ProportionsDefective()
	if err != nil {
		return err
	}
	pbar, err := rec.MeanProportionDefective()
	if err != nil {
		return err
	}
	perPoint := make([]Limits, rec.Len())
	for i, n := range rec.SampleSizes() {
		perPoint[i] = pLimits(pbar, n)
	}
	res.Series = append(res.Series, newSeries(Proportions, proportions, pLimits(pbar, res.SampleSize), perPoint))
	return nil
}

// pLimits are the 3 sigma limits of a proportion for a sample of n, the lower limit is floored at 0
func pLimits(pbar float64, n int) Limits {
	q := 3.0 * math.Sqrt(pbar*(1.0-pbar)/float64(n))
	return Limits{Center: pbar, Upper: pbar + q, Lower: math.Max(0.0, pbar-q)}
}
