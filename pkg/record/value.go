package record

import (
	"fmt"
	"strconv"
)

var _ Value = Continuous(0)
var _ Value = Attribute(false)

// Value is a single observed value, either a continuous (variable) value or a
// defective/good (attribute) value.  The set of implementations is closed.
type Value interface {
	// Float returns the numeric value, attribute values are coded as 1 for defective and 0 for good.
	Float() float64
	IsAttribute() bool
	String() string

	value()
}

// Continuous is a variable measurement such as a length or weight
type Continuous float64

func (c Continuous) Float() float64    { return float64(c) }
func (c Continuous) IsAttribute() bool { return false }
func (c Continuous) String() string    { return strconv.FormatFloat(float64(c), 'g', -1, 64) }
func (c Continuous) value()            {}

// Attribute is a binary classification, true means defective
type Attribute bool

func (a Attribute) Float() float64 {
	if a {
		return 1.0
	}
	return 0.0
}
func (a Attribute) IsAttribute() bool { return true }
func (a Attribute) value()            {}

func (a Attribute) String() string {
	if a {
		return "Defective"
	}
	return "Good"
}

// NewAttribute converts a numerically coded attribute value.  Only 0 (good) and 1 (defective)
// are accepted.
func NewAttribute(v float64) (Attribute, error) {
	switch v {
	case 0:
		return Attribute(false), nil
	case 1:
		return Attribute(true), nil
	default:
		return false, InvariantError{Msg: fmt.Sprintf("attribute value must be 0 or 1, got %v", v)}
	}
}

// NewValue returns a Continuous value, or an Attribute value when isAttribute is set
func NewValue(v float64, isAttribute bool) (Value, error) {
	if !isAttribute {
		return Continuous(v), nil
	}
	return NewAttribute(v)
}
