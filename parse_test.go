package shewhart

import (
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/go-yaml/yaml"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	tt := []struct {
		Name     string
		Cmdline  string
		Expected []ConfigOption
		Error    bool
	}{
		{Name: "input", Cmdline: "--input data.csv", Expected: []ConfigOption{Input("data.csv")}, Error: false},
		{Name: "chart", Cmdline: "--chart xbar-s", Expected: []ConfigOption{ChartType("xbar-s")}, Error: false},
		{Name: "sample-size", Cmdline: "-n 4", Expected: []ConfigOption{SampleSize("4")}, Error: false},
		{Name: "cusum-target", Cmdline: "--cusum-target 10.5", Expected: []ConfigOption{CUSUMTarget("10.5")}, Error: false},
		{Name: "cusum-k", Cmdline: "--cusum-k 1", Expected: []ConfigOption{CUSUMK("1")}, Error: false},
		{Name: "cusum-h", Cmdline: "--cusum-h 5", Expected: []ConfigOption{CUSUMH("5")}, Error: false},
		{Name: "we-rules", Cmdline: "-w", Expected: []ConfigOption{WesternElectric()}, Error: false},
		{Name: "title", Cmdline: "--title line3", Expected: []ConfigOption{Title("line3")}, Error: false},
		{Name: "units", Cmdline: "-u mm", Expected: []ConfigOption{Units("mm")}, Error: false},
		{Name: "output", Cmdline: "-o yaml", Expected: []ConfigOption{Output("yaml")}, Error: false},
		{Name: "plot", Cmdline: "--plot out/widgets", Expected: []ConfigOption{Plot("out/widgets")}, Error: false},
		{Name: "log-level", Cmdline: "--log-level debug", Expected: []ConfigOption{LogLevel("debug")}, Error: false},
		{Name: "rollbar-token", Cmdline: "--rollbar-token abc", Expected: []ConfigOption{RollbarToken("abc")}, Error: false},
		{Name: "no-error-reports", Cmdline: "--no-error-reports", Expected: []ConfigOption{NoErrorReports()}, Error: false},
		{Name: "positional", Cmdline: "data.csv xbar-r 3", Expected: []ConfigOption{Input("data.csv"), ChartType("xbar-r"), SampleSize("3")}, Error: false},
		{Name: "flags override positional", Cmdline: "data.csv xbar-r 3 -n 4", Expected: []ConfigOption{Input("data.csv"), ChartType("xbar-r"), SampleSize("4")}, Error: false},
		{Name: "error on unknown flag", Cmdline: "--does-not-exist", Expected: []ConfigOption{}, Error: true},
		{Name: "error on extra arguments", Cmdline: "data.csv xbar-r 3 extra", Expected: []ConfigOption{}, Error: true},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			pf := createFlagSet()
			options, err := parse(strings.Split(tc.Cmdline, " "), pf)
			if tc.Error {
				assert.Error(t, err)
			} else {
				expected, received := createComparisonConfigs(tc.Expected, options)
				assert.Equal(t, expected, received)
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	tt := []struct {
		Name     string
		Yaml     map[string]interface{}
		Expected []ConfigOption
		Error    bool
	}{
		{Name: "input", Yaml: map[string]interface{}{"input": "data.csv"}, Expected: []ConfigOption{Input("data.csv")}, Error: false},
		{Name: "chart", Yaml: map[string]interface{}{"chart": "attribute"}, Expected: []ConfigOption{ChartType("attribute")}, Error: false},
		{Name: "sample-size", Yaml: map[string]interface{}{"sample-size": 4}, Expected: []ConfigOption{SampleSize("4")}, Error: false},
		{Name: "cusum-target", Yaml: map[string]interface{}{"cusum-target": 10.5}, Expected: []ConfigOption{CUSUMTarget("10.5")}, Error: false},
		{Name: "cusum-target integer", Yaml: map[string]interface{}{"cusum-target": 10}, Expected: []ConfigOption{CUSUMTarget("10")}, Error: false},
		{Name: "we-rules", Yaml: map[string]interface{}{"we-rules": true}, Expected: []ConfigOption{WesternElectric()}, Error: false},
		{Name: "we-rules off", Yaml: map[string]interface{}{"we-rules": false}, Expected: []ConfigOption{}, Error: false},
		{Name: "title", Yaml: map[string]interface{}{"title": "Line 3 diameter"}, Expected: []ConfigOption{Title("Line 3 diameter")}, Error: false},
		{Name: "output", Yaml: map[string]interface{}{"output": "yaml"}, Expected: []ConfigOption{Output("yaml")}, Error: false},
		{Name: "plot", Yaml: map[string]interface{}{"plot": "widgets"}, Expected: []ConfigOption{Plot("widgets")}, Error: false},
		{Name: "no-error-reports", Yaml: map[string]interface{}{"no-error-reports": true}, Expected: []ConfigOption{NoErrorReports()}, Error: false},
		{Name: "error on unknown flag", Yaml: map[string]interface{}{"does-not-exist": "test"}, Expected: []ConfigOption{}, Error: true},
		{Name: "error on list", Yaml: map[string]interface{}{"title": []string{"a", "b"}}, Expected: []ConfigOption{}, Error: true},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			f, err := ioutil.TempFile("", "shcfg")
			if err != nil {
				t.Fatalf("unexpected error creating temp config file: %s", err)
			}
			defer os.Remove(f.Name())

			y, err := yaml.Marshal(tc.Yaml)
			if err != nil {
				t.Fatalf("unexpected error marshaling YAML: %s", err)
			}
			if _, err := f.Write(y); err != nil {
				t.Fatalf("unexpected error writing to file: %s", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("unexpected error closing file: %s", err)
			}

			pf := createFlagSet()
			options, err := parse([]string{"-c", f.Name()}, pf)
			if tc.Error {
				assert.Error(t, err)
			} else {
				expected, received := createComparisonConfigs(tc.Expected, options)
				assert.Equal(t, expected, received)
				assert.NoError(t, err)
			}
		})
	}
}

func createComparisonConfigs(expected []ConfigOption, received []ConfigOption) (Config, Config) {
	expectedConfig := Config{}
	for _, eo := range expected {
		eo(&expectedConfig)
	}
	receivedConfig := Config{}
	for _, to := range received {
		to(&receivedConfig)
	}
	return expectedConfig, receivedConfig
}
