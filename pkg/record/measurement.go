package record

import "fmt"

// Measurement is one observed value and, optionally, the time when it was observed.
// Measurements are immutable.
type Measurement struct {
	value Value
	time  Time
}

// NewMeasurement returns a measurement of v observed at t.  Use None() when there is no time info.
func NewMeasurement(v Value, t Time) Measurement {
	return Measurement{value: v, time: t}
}

// Variable is shorthand for a continuous measurement without time info
func Variable(v float64) Measurement {
	return NewMeasurement(Continuous(v), None())
}

// Value returns the observed value
func (m Measurement) Value() Value {
	return m.value
}

// Time returns the observation time, which may be absent
func (m Measurement) Time() Time {
	return m.time
}

// IsAttribute reports whether this is attribute (defective/good) data
func (m Measurement) IsAttribute() bool {
	return m.value != nil && m.value.IsAttribute()
}

func (m Measurement) String() string {
	s := "Measurement\n"
	if m.time.IsSet() {
		s += fmt.Sprintf("    %s\n", m.time)
	}
	if m.value != nil {
		s += fmt.Sprintf("    %s", m.value)
	}
	return s
}
