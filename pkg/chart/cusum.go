package chart

import (
	"fmt"
	"math"

	"github.com/BTBurke/shewhart/pkg/constants"
	"github.com/BTBurke/shewhart/pkg/record"
)

// CusumSums returns the upper and lower cumulative sums of the deviation of means from target,
// each reduced by slack:
//
//	SU(i) = max(0, x(i) - target - slack + SU(i-1))
//	SL(i) = min(0, x(i) - target + slack + SL(i-1))
//
// with SU(0) = SL(0) = 0.  The sums depend on the order of means.
func CusumSums(means []float64, target float64, slack float64) (upper []float64, lower []float64) {
	upper = make([]float64, len(means))
	lower = make([]float64, len(means))
	su, sl := 0.0, 0.0
	for i, x := range means {
		su = math.Max(0, x-target-slack+su)
		sl = math.Min(0, x-target+slack+sl)
		upper[i] = su
		lower[i] = sl
	}
	return upper, lower
}

// CusumSigma estimates the process sigma from the mean sample standard deviation, scaled by A3/3
func CusumSigma(rec *record.Record, n int, tables constants.Tables) (float64, error) {
	mos, err := rec.MeanOfStdevs()
	if err != nil {
		return 0, err
	}
	a3, err := tables.Lookup(constants.A3, n)
	if err != nil {
		return 0, err
	}
	return mos * a3 / 3.0, nil
}

func cusumSeries(k CUSUM) seriesFunc {
	return func(rec *record.Record, n int, tables constants.Tables) ([]Series, error) {
		if k.H <= 0 || k.K < 0 || math.IsNaN(k.Target) {
			return nil, KindError{Msg: fmt.Sprintf("invalid CUSUM parameters target=%v k=%v h=%v", k.Target, k.K, k.H)}
		}
		means, err := rec.Means()
		if err != nil {
			return nil, err
		}
		sigma, err := CusumSigma(rec, n, tables)
		if err != nil {
			return nil, err
		}
		upper, lower := CusumSums(means, k.Target, k.K*sigma)
		limits := Limits{Center: 0, Upper: k.H * sigma, Lower: -k.H * sigma}
		return []Series{
			newSeries(CUSUMUpper, upper, limits, nil),
			newSeries(CUSUMLower, lower, limits, nil),
		}, nil
	}
}
