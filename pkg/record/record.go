package record

import (
	"fmt"

	"github.com/BTBurke/shewhart/pkg/fsm"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// Open records accept new samples
	Open = fsm.State("open")
	// Sealed records are read-only, as are the samples they own
	Sealed = fsm.State("sealed")
)

// Record is the ordered sequence of samples under analysis.  The mode (variable or attribute)
// and the presence of time info are fixed by the first sample and validated on every append.
//
// A record owns its samples exclusively; a sample can belong to only one record.  Aggregates are
// recomputed whenever the record or any sample it owns has changed since the last read.
type Record struct {
	samples   []*Sample
	lifecycle *fsm.Machine

	cached    *aggregates
	cachedGen uint64
}

type aggregates struct {
	meanOfMeans  float64
	meanOfRanges float64
	meanOfStdevs float64
}

// NewRecord returns an open record containing the given samples, which may be none
func NewRecord(samples ...*Sample) (*Record, error) {
	r := &Record{}
	machine, err := fsm.NewMachine(Open,
		fsm.WithTransitions(fsm.T(Open, Sealed)),
		fsm.WithOnEnter(Sealed, r.freeze),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create record lifecycle: %v", err)
	}
	r.lifecycle = machine
	if len(samples) > 0 {
		if err := r.Append(samples...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Append adds samples to the end of the record.  Either all samples are appended or, on error,
// none of them.
func (r *Record) Append(samples ...*Sample) error {
	if r.lifecycle.Is(Sealed) {
		return InvariantError{Msg: "can not append to a sealed record"}
	}
	if len(samples) == 0 {
		return InvariantError{Msg: "at least one sample is required"}
	}
	ref := samples[0]
	if len(r.samples) > 0 {
		ref = r.samples[0]
	}
	for i, s := range samples {
		switch {
		case s == nil || s.Size() == 0:
			return InvariantError{Msg: fmt.Sprintf("sample %d is empty", i)}
		case s.owned:
			return InvariantError{Msg: fmt.Sprintf("sample %d already belongs to a record", i)}
		case s.IsAttribute() != ref.IsAttribute():
			return InvariantError{Msg: "can not mix variable and attribute samples in one record"}
		case s.Time().IsSet() != ref.Time().IsSet():
			return TimeError{Msg: "either all or none of the samples in a record must carry time info"}
		}
		for _, prev := range samples[:i] {
			if prev == s {
				return InvariantError{Msg: fmt.Sprintf("sample %d is appended twice", i)}
			}
		}
	}
	for _, s := range samples {
		s.owned = true
	}
	r.samples = append(r.samples, samples...)
	r.cached = nil
	return nil
}

// Seal makes the record and every sample it owns read-only.  Sealing a sealed record is a no-op.
func (r *Record) Seal() error {
	if r.lifecycle.Is(Sealed) {
		return nil
	}
	return r.lifecycle.Transition(Sealed)
}

// Sealed reports whether the record is read-only
func (r *Record) Sealed() bool {
	return r.lifecycle.Is(Sealed)
}

func (r *Record) freeze(from, to fsm.State) error {
	if len(r.samples) == 0 {
		return InvariantError{Msg: "can not seal an empty record"}
	}
	for _, s := range r.samples {
		s.frozen = true
	}
	return nil
}

// Len returns the number of samples
func (r *Record) Len() int {
	return len(r.samples)
}

// Samples returns the samples in order
func (r *Record) Samples() []*Sample {
	out := make([]*Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// SampleSize is the size of the first sample.  Records built by the importer have a uniform size.
func (r *Record) SampleSize() (int, error) {
	if err := r.nonEmpty(); err != nil {
		return 0, err
	}
	return r.samples[0].Size(), nil
}

// SampleSizes returns the size of every sample
func (r *Record) SampleSizes() []int {
	out := make([]int, len(r.samples))
	for i, s := range r.samples {
		out[i] = s.Size()
	}
	return out
}

func (r *Record) IsAttribute() bool {
	return len(r.samples) > 0 && r.samples[0].IsAttribute()
}

func (r *Record) IsVariable() bool {
	return len(r.samples) > 0 && r.samples[0].IsVariable()
}

// HasTimeInfo reports whether the measurements carry time info
func (r *Record) HasTimeInfo() bool {
	return len(r.samples) > 0 && r.samples[0].measurements[0].time.IsSet()
}

// Times returns the time of every sample
func (r *Record) Times() []Time {
	out := make([]Time, len(r.samples))
	for i, s := range r.samples {
		out[i] = s.Time()
	}
	return out
}

// TimeAxis returns one x coordinate per sample: the sample number when there is no time info,
// otherwise elapsed seconds or Unix seconds.  Elapsed and absolute times can not be mixed.
func (r *Record) TimeAxis() ([]float64, error) {
	out := make([]float64, len(r.samples))
	if !r.HasTimeInfo() {
		for i := range out {
			out[i] = float64(i)
		}
		return out, nil
	}
	kind := r.samples[0].Time().Kind()
	for i, s := range r.samples {
		t := s.Time()
		if t.Kind() != kind {
			return nil, TimeError{Msg: fmt.Sprintf("sample %d has %s time, expected %s time", i, t.Kind(), kind)}
		}
		out[i] = t.Seconds()
	}
	return out, nil
}

// Means returns the mean of every sample of a variable record
func (r *Record) Means() ([]float64, error) {
	return r.collect((*Sample).Mean)
}

// Ranges returns the range of every sample of a variable record
func (r *Record) Ranges() ([]float64, error) {
	return r.collect((*Sample).Range)
}

// Stdevs returns the sample standard deviation of every sample of a variable record
func (r *Record) Stdevs() ([]float64, error) {
	return r.collect((*Sample).Stdev)
}

// ProportionsDefective returns the proportion defective of every sample of an attribute record
func (r *Record) ProportionsDefective() ([]float64, error) {
	return r.collect((*Sample).ProportionDefective)
}

// NumbersDefective returns the defect count of every sample of an attribute record
func (r *Record) NumbersDefective() ([]int, error) {
	if err := r.nonEmpty(); err != nil {
		return nil, err
	}
	out := make([]int, len(r.samples))
	for i, s := range r.samples {
		n, err := s.NumberDefective()
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (r *Record) collect(f func(*Sample) (float64, error)) ([]float64, error) {
	if err := r.nonEmpty(); err != nil {
		return nil, err
	}
	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		v, err := f(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// MeanOfMeans is the grand mean of the sample means
func (r *Record) MeanOfMeans() (float64, error) {
	agg, err := r.variable()
	if err != nil {
		return 0, err
	}
	return agg.meanOfMeans, nil
}

// MeanOfRanges is the mean of the sample ranges
func (r *Record) MeanOfRanges() (float64, error) {
	agg, err := r.variable()
	if err != nil {
		return 0, err
	}
	return agg.meanOfRanges, nil
}

// MeanOfStdevs is the mean of the sample standard deviations
func (r *Record) MeanOfStdevs() (float64, error) {
	agg, err := r.variable()
	if err != nil {
		return 0, err
	}
	return agg.meanOfStdevs, nil
}

// MeanProportionDefective is the total number of defects divided by the total number of
// measurements over all samples.  It is not the mean of the per-sample proportions.
func (r *Record) MeanProportionDefective() (float64, error) {
	counts, err := r.NumbersDefective()
	if err != nil {
		return 0, err
	}
	defects, total := 0, 0
	for i, s := range r.samples {
		defects += counts[i]
		total += s.Size()
	}
	return float64(defects) / float64(total), nil
}

// generation changes whenever a sample is added to the record or a measurement is added to
// one of its samples.
func (r *Record) generation() uint64 {
	gen := uint64(len(r.samples))
	for _, s := range r.samples {
		gen += s.version
	}
	return gen
}

func (r *Record) variable() (*aggregates, error) {
	if err := r.nonEmpty(); err != nil {
		return nil, err
	}
	if !r.IsVariable() {
		return nil, InvariantError{Msg: "means of sample statistics are only defined for variable records"}
	}
	if gen := r.generation(); r.cached == nil || r.cachedGen != gen {
		means, _ := r.Means()
		ranges, _ := r.Ranges()
		stdevs, _ := r.Stdevs()
		r.cached = &aggregates{
			meanOfMeans:  stat.Mean(means, nil),
			meanOfRanges: stat.Mean(ranges, nil),
			meanOfStdevs: floats.Sum(stdevs) / float64(len(stdevs)),
		}
		r.cachedGen = gen
	}
	return r.cached, nil
}

func (r *Record) nonEmpty() error {
	if len(r.samples) == 0 {
		return InvariantError{Msg: "record contains no samples"}
	}
	return nil
}

func (r *Record) String() string {
	s := "Record\n"
	switch {
	case r.IsVariable():
		agg, _ := r.variable()
		s += fmt.Sprintf("    Mean of means: %v\n", agg.meanOfMeans)
		s += fmt.Sprintf("    Mean of ranges: %v\n", agg.meanOfRanges)
		s += fmt.Sprintf("    Mean of stdevs: %v", agg.meanOfStdevs)
	case r.IsAttribute():
		p, _ := r.MeanProportionDefective()
		s += fmt.Sprintf("    Mean proportion defective: %v", p)
	}
	return s
}
