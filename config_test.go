package shewhart

import (
	"testing"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, errs := NewConfig(Input("data.csv"), ChartType("xbar-r"))
	require.Empty(t, errs)
	assert.Equal(t, 5, c.SampleSize)
	assert.Equal(t, "Unknown Data", c.Title)
	assert.Equal(t, TextOutput, c.Output)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.False(t, c.WesternElectric)

	kind, err := c.Kind()
	require.NoError(t, err)
	assert.Equal(t, chart.XbarR{}, kind)
}

func TestNewConfigErrors(t *testing.T) {
	tt := []struct {
		name    string
		options []ConfigOption
		errors  int
	}{
		{name: "missing input and chart", options: nil, errors: 2},
		{name: "unknown chart", options: []ConfigOption{Input("a.csv"), ChartType("pareto")}, errors: 2},
		{name: "cusum without target", options: []ConfigOption{Input("a.csv"), ChartType("cusum")}, errors: 1},
		{name: "bad sample size", options: []ConfigOption{Input("a.csv"), ChartType("xbar-r"), SampleSize("two")}, errors: 1},
		{name: "zero sample size", options: []ConfigOption{Input("a.csv"), ChartType("xbar-r"), SampleSize("0")}, errors: 1},
		{name: "every bad option", options: []ConfigOption{Input("a.csv"), ChartType("xbar-r"), CUSUMK("-1"), CUSUMH("0"), Output("json"), LogLevel("loud")}, errors: 4},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := NewConfig(tc.options...)
			assert.Len(t, errs, tc.errors)
		})
	}
}

func TestConfigKind(t *testing.T) {
	c, errs := NewConfig(Input("a.csv"), ChartType("cusum"), CUSUMTarget("12"), CUSUMK("1"), CUSUMH("5"), WesternElectric())
	require.Empty(t, errs)
	kind, err := c.Kind()
	require.NoError(t, err)
	assert.Equal(t, chart.CUSUM{Target: 12, K: 1, H: 5, WesternElectric: true}, kind)

	c, errs = NewConfig(Input("a.csv"), ChartType("attribute"), WesternElectric())
	require.Empty(t, errs)
	kind, err = c.Kind()
	require.NoError(t, err)
	assert.Equal(t, chart.PAttribute{}, kind)
}
