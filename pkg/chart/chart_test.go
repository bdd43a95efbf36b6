package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/BTBurke/shewhart/pkg/constants"
	"github.com/BTBurke/shewhart/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variableRecord(t *testing.T, samples ...[]float64) *record.Record {
	t.Helper()
	r, err := record.NewRecord()
	require.NoError(t, err)
	for _, values := range samples {
		require.NoError(t, r.Append(mustSample(t, values...)))
	}
	return r
}

// attributeSample returns a sample of size n with the first defective measurements defective
func attributeSample(t *testing.T, n int, defective int) *record.Sample {
	t.Helper()
	ms := make([]record.Measurement, n)
	for i := range ms {
		ms[i] = record.NewMeasurement(record.Attribute(i < defective), record.None())
	}
	s, err := record.NewSample(ms...)
	require.NoError(t, err)
	return s
}

func repeat(n int, values ...float64) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = values
	}
	return out
}

func assertLimits(t *testing.T, exp Limits, got Limits) {
	t.Helper()
	assert.InDelta(t, exp.Center, got.Center, 1e-6, "center")
	assert.InDelta(t, exp.Upper, got.Upper, 1e-6, "upper")
	assert.InDelta(t, exp.Lower, got.Lower, 1e-6, "lower")
}

func TestXbarRLimits(t *testing.T) {
	rec := variableRecord(t, []float64{1, 3}, []float64{2, 4}, []float64{3, 5})
	res, err := ComputeLimits(rec, XbarR{}, constants.Standard())
	require.NoError(t, err)

	assert.Equal(t, "xbar-r", res.Kind)
	assert.Equal(t, 2, res.SampleSize)
	require.Len(t, res.Series, 2)

	means, ok := res.Find(Means)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 3, 4}, means.Values)
	assertLimits(t, Limits{Center: 3, Upper: 6.76, Lower: -0.76}, means.Limits)

	ranges, ok := res.Find(Ranges)
	require.True(t, ok)
	assertLimits(t, Limits{Center: 2, Upper: 6.534, Lower: 0}, ranges.Limits)

	assert.True(t, res.InControl)
	assert.False(t, res.WesternElectricChecked)
	assert.True(t, rec.Sealed())
}

func TestXbarROutOfControl(t *testing.T) {
	samples := append(repeat(9, 10, 11), []float64{30, 31})
	res, err := ComputeLimits(variableRecord(t, samples...), XbarR{}, constants.Standard())
	require.NoError(t, err)

	means, _ := res.Find(Means)
	assertLimits(t, Limits{Center: 12.5, Upper: 14.38, Lower: 10.62}, means.Limits)
	assert.False(t, means.InControl)
	assert.Contains(t, means.OutOfLimits, 9)

	ranges, _ := res.Find(Ranges)
	assert.True(t, ranges.InControl)
	assert.False(t, res.InControl)
}

func TestXbarRWesternElectricGatesInControl(t *testing.T) {
	samples := append(repeat(2, -4, 0), repeat(8, -1, 3)...)

	res, err := ComputeLimits(variableRecord(t, samples...), XbarR{WesternElectric: true}, constants.Standard())
	require.NoError(t, err)
	for _, s := range res.Series {
		assert.True(t, s.InControl, s.Name)
	}
	assert.True(t, res.WesternElectricChecked)
	assert.False(t, res.PassingWesternElectric())
	assert.False(t, res.InControl)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, EightConsecutiveBeyondMean, res.Violations[0].Rule)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, res.Violations[0].Indices)

	res, err = ComputeLimits(variableRecord(t, samples...), XbarR{}, constants.Standard())
	require.NoError(t, err)
	assert.True(t, res.InControl)
	assert.Empty(t, res.Violations)
}

func TestXbarSLimits(t *testing.T) {
	rec := variableRecord(t, []float64{11, 13, 15}, []float64{20, 23, 26})
	res, err := ComputeLimits(rec, XbarS{}, constants.Standard())
	require.NoError(t, err)

	means, _ := res.Find(Means)
	assertLimits(t, Limits{Center: 18, Upper: 23.115, Lower: 12.885}, means.Limits)
	stdevs, ok := res.Find(Stdevs)
	require.True(t, ok)
	assertLimits(t, Limits{Center: 2.5, Upper: 6.42, Lower: 0}, stdevs.Limits)
	_, ok = res.Find(Ranges)
	assert.False(t, ok)
	assert.True(t, res.InControl)
}

func TestCUSUMChart(t *testing.T) {
	sigma := 2.5 * 1.954 / 3.0
	tt := []struct {
		name      string
		target    float64
		upper     []float64
		lower     []float64
		inControl bool
	}{
		{name: "on target", target: 18, upper: []float64{0, 5 - 0.5*sigma}, lower: []float64{-5 + 0.5*sigma, 0}, inControl: true},
		{name: "off target", target: 0, upper: []float64{13 - 0.5*sigma, 36 - sigma}, lower: []float64{0, 0}, inControl: false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			rec := variableRecord(t, []float64{11, 13, 15}, []float64{20, 23, 26})
			res, err := ComputeLimits(rec, NewCUSUM(tc.target, false), constants.Standard())
			require.NoError(t, err)
			require.Len(t, res.Series, 4)

			upper, _ := res.Find(CUSUMUpper)
			lower, _ := res.Find(CUSUMLower)
			assert.InDeltaSlice(t, tc.upper, upper.Values, 1e-9)
			assert.InDeltaSlice(t, tc.lower, lower.Values, 1e-9)
			assertLimits(t, Limits{Center: 0, Upper: 4 * sigma, Lower: -4 * sigma}, upper.Limits)
			assert.Equal(t, tc.inControl, res.InControl)
		})
	}
}

func TestCUSUMInvalidParameters(t *testing.T) {
	rec := variableRecord(t, []float64{11, 13, 15}, []float64{20, 23, 26})
	_, err := ComputeLimits(rec, CUSUM{Target: 18}, constants.Standard())
	assert.IsType(t, KindError{}, err)
}

func TestPChartUsesEachSampleSize(t *testing.T) {
	rec, err := record.NewRecord(attributeSample(t, 50, 5), attributeSample(t, 100, 10))
	require.NoError(t, err)

	res, err := ComputeLimits(rec, PAttribute{}, constants.Standard())
	require.NoError(t, err)
	require.Len(t, res.Series, 1)

	p := res.Series[0]
	assert.Equal(t, Proportions, p.Name)
	assert.Equal(t, []float64{0.1, 0.1}, p.Values)
	require.Len(t, p.PerPoint, 2)
	assertLimits(t, Limits{Center: 0.1, Upper: 0.1 + 3*math.Sqrt(0.09/50), Lower: 0}, p.LimitsAt(0))
	assertLimits(t, Limits{Center: 0.1, Upper: 0.19, Lower: 0.01}, p.LimitsAt(1))
	assert.NotEqual(t, p.LimitsAt(0).Upper, p.LimitsAt(1).Upper)
	assert.NotEqual(t, p.LimitsAt(0).Lower, p.LimitsAt(1).Lower)
	assert.True(t, res.InControl)
	assert.False(t, res.WesternElectricChecked)
}

func TestPChartOutOfControl(t *testing.T) {
	rec, err := record.NewRecord(
		attributeSample(t, 100, 1), attributeSample(t, 100, 2), attributeSample(t, 100, 1),
		attributeSample(t, 100, 2), attributeSample(t, 100, 30),
	)
	require.NoError(t, err)
	res, err := ComputeLimits(rec, PAttribute{}, constants.Standard())
	require.NoError(t, err)
	assert.Equal(t, []int{4}, res.Series[0].OutOfLimits)
	assert.False(t, res.InControl)
}

func TestComputeLimitsErrors(t *testing.T) {
	attribute, err := record.NewRecord(attributeSample(t, 10, 1))
	require.NoError(t, err)
	ones, err := record.ImportTimesValues([]float64{1, 2, 3}, nil, 1, false)
	require.NoError(t, err)
	empty, _ := record.NewRecord()

	noD4 := constants.Standard()
	delete(noD4.D4, 2)

	tt := []struct {
		name   string
		rec    *record.Record
		kind   Kind
		tables constants.Tables
		check  func(t *testing.T, err error)
	}{
		{name: "p chart of variable data", rec: variableRecord(t, []float64{1, 2}), kind: PAttribute{}, tables: constants.Standard(), check: isKindError},
		{name: "xbar-r of attribute data", rec: attribute, kind: XbarR{}, tables: constants.Standard(), check: isKindError},
		{name: "nil kind", rec: variableRecord(t, []float64{1, 2}), kind: nil, tables: constants.Standard(), check: isKindError},
		{name: "sample size outside table", rec: ones, kind: XbarR{}, tables: constants.Standard(), check: isConstantError},
		{name: "sample size too large", rec: variableRecord(t, make([]float64, 30)), kind: XbarS{}, tables: constants.Standard(), check: isConstantError},
		{name: "injected table without D4", rec: variableRecord(t, []float64{1, 2}), kind: XbarR{}, tables: noD4, check: isConstantError},
		{name: "empty record", rec: empty, kind: XbarR{}, tables: constants.Standard(), check: isInvariantError},
		{name: "nil record", rec: nil, kind: XbarR{}, tables: constants.Standard(), check: isInvariantError},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ComputeLimits(tc.rec, tc.kind, tc.tables)
			assert.Nil(t, res)
			tc.check(t, err)
			if tc.rec != nil {
				assert.False(t, tc.rec.Sealed(), "a failed evaluation must leave the record open")
			}
		})
	}
}

func TestComputeLimitsRetryAfterWrongKind(t *testing.T) {
	rec := variableRecord(t, []float64{1, 3}, []float64{2, 4})
	_, err := ComputeLimits(rec, PAttribute{}, constants.Standard())
	isKindError(t, err)
	require.NoError(t, rec.Append(mustSample(t, 3, 5)))

	res, err := ComputeLimits(rec, XbarR{}, constants.Standard())
	require.NoError(t, err)
	assert.Equal(t, 3, len(res.Series[0].Values))
	assert.True(t, rec.Sealed())
}

func mustSample(t *testing.T, values ...float64) *record.Sample {
	t.Helper()
	ms := make([]record.Measurement, len(values))
	for i, v := range values {
		ms[i] = record.Variable(v)
	}
	s, err := record.NewSample(ms...)
	require.NoError(t, err)
	return s
}

func isKindError(t *testing.T, err error) {
	var kerr KindError
	assert.True(t, errors.As(err, &kerr), "expected KindError, got %v", err)
}

func isConstantError(t *testing.T, err error) {
	var cerr constants.ConstantError
	assert.True(t, errors.As(err, &cerr), "expected ConstantError, got %v", err)
}

func isInvariantError(t *testing.T, err error) {
	var ierr record.InvariantError
	assert.True(t, errors.As(err, &ierr), "expected InvariantError, got %v", err)
}

func TestLimits(t *testing.T) {
	l := Limits{Center: 0, Upper: 3, Lower: -3}
	u, lo := l.Zone(1)
	assert.Equal(t, 1.0, u)
	assert.Equal(t, -1.0, lo)
	u, lo = l.Zone(2)
	assert.Equal(t, 2.0, u)
	assert.Equal(t, -2.0, lo)

	assert.True(t, l.Contains(3))
	assert.True(t, l.Contains(-3))
	assert.False(t, l.Contains(3.0001))
	assert.False(t, l.Contains(math.NaN()))
}

func TestParseKind(t *testing.T) {
	tt := []struct {
		name  string
		exp   Kind
		Error bool
	}{
		{name: "xbar-r", exp: XbarR{WesternElectric: true}},
		{name: "xbar-s", exp: XbarS{WesternElectric: true}},
		{name: "cusum", exp: CUSUM{Target: 2, K: 0.5, H: 4, WesternElectric: true}},
		{name: "attribute", exp: PAttribute{}},
		{name: "pareto", Error: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			k, err := ParseKind(tc.name, true, 2)
			switch tc.Error {
			case true:
				assert.IsType(t, KindError{}, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.exp, k)
				assert.Equal(t, tc.name, k.Name())
			}
		})
	}
}
