package chart

import "fmt"

var _ Kind = XbarR{}
var _ Kind = XbarS{}
var _ Kind = CUSUM{}
var _ Kind = PAttribute{}

// Kind is the closed set of supported control charts.  Each variant carries the parameters it
// needs to compute its own limits.
type Kind interface {
	Name() string
	kind()
}

// XbarR plots sample means and sample ranges.  Limits of both are derived from the mean range.
type XbarR struct {
	WesternElectric bool
}

// XbarS plots sample means and sample standard deviations
type XbarS struct {
	WesternElectric bool
}

// CUSUM is an X̄-R chart extended with upper and lower cumulative sums of the deviation of sample
// means from Target.  K is the slack and H the decision interval, both in multiples of the
// estimated process sigma.
type CUSUM struct {
	Target          float64
	K               float64
	H               float64
	WesternElectric bool
}

// PAttribute plots the proportion defective of attribute samples.  Sample sizes may vary.
type PAttribute struct{}

// Default CUSUM parameters
const (
	DefaultCUSUMK float64 = 0.5
	DefaultCUSUMH float64 = 4.0
)

// NewCUSUM returns a CUSUM chart with the default slack and decision interval
func NewCUSUM(target float64, westernElectric bool) CUSUM {
	return CUSUM{Target: target, K: DefaultCUSUMK, H: DefaultCUSUMH, WesternElectric: westernElectric}
}

func (XbarR) Name() string      { return "xbar-r" }
func (XbarS) Name() string      { return "xbar-s" }
func (CUSUM) Name() string      { return "cusum" }
func (PAttribute) Name() string { return "attribute" }

func (XbarR) kind()      {}
func (XbarS) kind()      {}
func (CUSUM) kind()      {}
func (PAttribute) kind() {}

// KindNames lists the names accepted by ParseKind
func KindNames() []string {
	return []string{XbarR{}.Name(), XbarS{}.Name(), CUSUM{}.Name(), PAttribute{}.Name()}
}

// ParseKind returns the chart named name.  CUSUM charts get the default K and H, and the given
// target.  The Western Electric check is ignored for attribute charts.
func ParseKind(name string, westernElectric bool, cusumTarget float64) (Kind, error) {
	switch name {
	case XbarR{}.Name():
		return XbarR{WesternElectric: westernElectric}, nil
	case XbarS{}.Name():
		return XbarS{WesternElectric: westernElectric}, nil
	case CUSUM{}.Name():
		return NewCUSUM(cusumTarget, westernElectric), nil
	case PAttribute{}.Name():
		return PAttribute{}, nil
	default:
		return nil, KindError{Msg: fmt.Sprintf("unknown chart type %q, expected one of %v", name, KindNames())}
	}
}
