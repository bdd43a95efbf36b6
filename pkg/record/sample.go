package record

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is an ordered, non-empty group of measurements that are treated as one statistical unit.
// All measurements share one kind of data and either all or none of them carry time info.
//
// Derived statistics are computed on first read and cleared by Append.
type Sample struct {
	measurements []Measurement
	version      uint64
	frozen       bool
	owned        bool

	cached *variableStats
}

type variableStats struct {
	mean  float64
	rng   float64
	stdev float64
}

// NewSample returns a sample of the given measurements
func NewSample(measurements ...Measurement) (*Sample, error) {
	s := &Sample{}
	if err := s.Append(measurements...); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSample is like NewSample but panics on error.  It is meant for fixtures with literal data.
func MustSample(measurements ...Measurement) *Sample {
	s, err := NewSample(measurements...)
	if err != nil {
		panic(err)
	}
	return s
}

// Append adds measurements to the end of the sample.  Either all measurements are appended or,
// on error, none of them.
func (s *Sample) Append(measurements ...Measurement) error {
	if s.frozen {
		return InvariantError{Msg: "can not append to a sample of a sealed record"}
	}
	if len(measurements) == 0 {
		return InvariantError{Msg: "at least one measurement is required"}
	}

	ref := measurements[0]
	if len(s.measurements) > 0 {
		ref = s.measurements[0]
	}
	for i, m := range measurements {
		if m.value == nil {
			return InvariantError{Msg: fmt.Sprintf("measurement %d has no value", i)}
		}
		if m.IsAttribute() != ref.IsAttribute() {
			return InvariantError{Msg: "can not mix variable and attribute measurements in one sample"}
		}
		if m.time.IsSet() != ref.time.IsSet() {
			return TimeError{Msg: "either all or none of the measurements in a sample must carry time info"}
		}
	}

	s.measurements = append(s.measurements, measurements...)
	s.version++
	s.cached = nil
	return nil
}

// Size returns the number of measurements in the sample
func (s *Sample) Size() int {
	return len(s.measurements)
}

// Measurements returns a copy of the measurements in order
func (s *Sample) Measurements() []Measurement {
	out := make([]Measurement, len(s.measurements))
	copy(out, s.measurements)
	return out
}

// Values returns the numeric values of the measurements in order
func (s *Sample) Values() []float64 {
	out := make([]float64, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = m.value.Float()
	}
	return out
}

// Times returns the times of the measurements in order
func (s *Sample) Times() []Time {
	out := make([]Time, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = m.time
	}
	return out
}

func (s *Sample) IsAttribute() bool {
	return len(s.measurements) > 0 && s.measurements[0].IsAttribute()
}

func (s *Sample) IsVariable() bool {
	return len(s.measurements) > 0 && !s.measurements[0].IsAttribute()
}

// Time is the time of the last measurement, or an absent time when the measurements carry no
// time info.
func (s *Sample) Time() Time {
	if len(s.measurements) == 0 || !s.measurements[0].time.IsSet() {
		return None()
	}
	return s.measurements[len(s.measurements)-1].time
}

// Mean is the arithmetic mean of a variable sample
func (s *Sample) Mean() (float64, error) {
	vs, err := s.variable()
	if err != nil {
		return 0, err
	}
	return vs.mean, nil
}

// Range is max - min of a variable sample
func (s *Sample) Range() (float64, error) {
	vs, err := s.variable()
	if err != nil {
		return 0, err
	}
	return vs.rng, nil
}

// Stdev is the sample standard deviation (divisor n-1) of a variable sample.  It is NaN for a
// sample of one measurement.
func (s *Sample) Stdev() (float64, error) {
	vs, err := s.variable()
	if err != nil {
		return 0, err
	}
	return vs.stdev, nil
}

func (s *Sample) variable() (*variableStats, error) {
	if !s.IsVariable() {
		return nil, InvariantError{Msg: "mean, range and stdev are only defined for variable samples"}
	}
	if s.cached == nil {
		values := s.Values()
		s.cached = &variableStats{
			mean:  stat.Mean(values, nil),
			rng:   floats.Max(values) - floats.Min(values),
			stdev: stat.StdDev(values, nil),
		}
	}
	return s.cached, nil
}

// NumberDefective is the count of defective measurements in an attribute sample
func (s *Sample) NumberDefective() (int, error) {
	if !s.IsAttribute() {
		return 0, InvariantError{Msg: "number defective is only defined for attribute samples"}
	}
	n := 0
	for _, m := range s.measurements {
		if m.value.Float() == 1 {
			n++
		}
	}
	return n, nil
}

// ProportionDefective is the fraction of defective measurements in an attribute sample
func (s *Sample) ProportionDefective() (float64, error) {
	n, err := s.NumberDefective()
	if err != nil {
		return 0, err
	}
	return float64(n) / float64(s.Size()), nil
}

func (s *Sample) String() string {
	out := "Sample\n"
	if t := s.Time(); t.IsSet() {
		out += fmt.Sprintf("    Time  : %s\n", t)
	}
	switch {
	case s.IsVariable():
		vs, _ := s.variable()
		out += fmt.Sprintf("    Mean: %v\n", vs.mean)
		out += fmt.Sprintf("    Range: %v\n", vs.rng)
		out += fmt.Sprintf("    Stdev: %v", vs.stdev)
	case s.IsAttribute():
		n, _ := s.NumberDefective()
		p, _ := s.ProportionDefective()
		out += fmt.Sprintf("    Defect count: %d\n", n)
		out += fmt.Sprintf("    Proportion defective: %v", p)
	}
	return out
}
