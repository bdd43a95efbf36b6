package record

import "fmt"

// ImportTimesValues organizes flat arrays of values and optional times into a record of samples of
// sampleSize consecutive measurements, in input order.  times may be nil; otherwise it must have
// the same length as values.
//
// A trailing group of fewer than sampleSize values does not form a sample and is dropped.
func ImportTimesValues(values []float64, times []Time, sampleSize int, isAttribute bool) (*Record, error) {
	if times != nil && len(times) != len(values) {
		return nil, ImportError{Msg: fmt.Sprintf("length mismatch: 'times' has length %d, and 'values' has length %d", len(times), len(values))}
	}
	if sampleSize < 1 {
		return nil, ImportError{Msg: fmt.Sprintf("sample size must be at least 1, got %d", sampleSize)}
	}
	if len(values) < sampleSize {
		return nil, ImportError{Msg: fmt.Sprintf("%d values do not fill a single sample of size %d", len(values), sampleSize)}
	}

	r, err := NewRecord()
	if err != nil {
		return nil, err
	}
	batch := make([]Measurement, 0, sampleSize)
	for i, v := range values {
		value, err := NewValue(v, isAttribute)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		t := None()
		if times != nil {
			t = times[i]
		}
		batch = append(batch, NewMeasurement(value, t))
		if len(batch) == sampleSize {
			s, err := NewSample(batch...)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", r.Len(), err)
			}
			if err := r.Append(s); err != nil {
				return nil, fmt.Errorf("sample %d: %w", r.Len(), err)
			}
			batch = make([]Measurement, 0, sampleSize)
		}
	}
	return r, nil
}
