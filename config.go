package shewhart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/rs/zerolog"
)

// OutputFormat selects how the chart report is written
type OutputFormat string

const (
	TextOutput OutputFormat = "text"
	YAMLOutput OutputFormat = "yaml"
)

// Config holds everything needed to evaluate one measurements file
type Config struct {
	Input           string
	Chart           string
	SampleSize      int
	CUSUMTarget     float64
	CUSUMK          float64
	CUSUMH          float64
	WesternElectric bool
	Title           string
	Units           string
	Plot            string
	Output          OutputFormat
	LogLevel        zerolog.Level
	RollbarToken    string
	NoErrorReports  bool

	cusumTargetSet bool
}

type ConfigOption func(c *Config) error

// NewConfig applies options over the defaults and validates the result.  Every failing option is
// returned, not only the first.
func NewConfig(options ...ConfigOption) (Config, []error) {
	c := Config{
		SampleSize: 5,
		CUSUMK:     chart.DefaultCUSUMK,
		CUSUMH:     chart.DefaultCUSUMH,
		Title:      "Unknown Data",
		Output:     TextOutput,
		LogLevel:   zerolog.InfoLevel,
	}

	var errors []error
	for _, option := range options {
		if err := option(&c); err != nil {
			errors = append(errors, err)
		}
	}
	if c.Input == "" {
		errors = append(errors, fmt.Errorf("a measurements file is required"))
	}
	if c.Chart == "" {
		errors = append(errors, fmt.Errorf("a chart type is required, one of %s", strings.Join(chart.KindNames(), ", ")))
	}
	if c.Chart == (chart.CUSUM{}).Name() && !c.cusumTargetSet {
		errors = append(errors, fmt.Errorf("cusum charts require a target, use --cusum-target"))
	}

	if len(errors) > 0 {
		return Config{}, errors
	}
	return c, nil
}

// Kind returns the chart described by the configuration
func (c Config) Kind() (chart.Kind, error) {
	kind, err := chart.ParseKind(c.Chart, c.WesternElectric, c.CUSUMTarget)
	if err != nil {
		return nil, err
	}
	if cusum, ok := kind.(chart.CUSUM); ok {
		cusum.K = c.CUSUMK
		cusum.H = c.CUSUMH
		return cusum, nil
	}
	return kind, nil
}

// Input is the path of the CSV measurements file
func Input(path string) ConfigOption {
	return func(c *Config) error {
		c.Input = path
		return nil
	}
}

func ChartType(name string) ConfigOption {
	return func(c *Config) error {
		if _, err := chart.ParseKind(name, false, 0); err != nil {
			return err
		}
		c.Chart = name
		return nil
	}
}

// SampleSize is the number of consecutive measurements grouped into one sample
func SampleSize(size string) ConfigOption {
	return func(c *Config) error {
		n, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("could not convert sample-size to integer: %s", size)
		}
		if n < 1 {
			return fmt.Errorf("sample-size must be at least 1, got %d", n)
		}
		c.SampleSize = n
		return nil
	}
}

func CUSUMTarget(target string) ConfigOption {
	return func(c *Config) error {
		t, err := parseFloat("cusum-target", target)
		if err != nil {
			return err
		}
		c.CUSUMTarget = t
		c.cusumTargetSet = true
		return nil
	}
}

// CUSUMK is the slack of the cumulative sums in multiples of sigma
func CUSUMK(k string) ConfigOption {
	return func(c *Config) error {
		v, err := parseFloat("cusum-k", k)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("cusum-k must not be negative, got %v", v)
		}
		c.CUSUMK = v
		return nil
	}
}

// CUSUMH is the decision interval of the cumulative sums in multiples of sigma
func CUSUMH(h string) ConfigOption {
	return func(c *Config) error {
		v, err := parseFloat("cusum-h", h)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("cusum-h must be positive, got %v", v)
		}
		c.CUSUMH = v
		return nil
	}
}

func WesternElectric() ConfigOption {
	return func(c *Config) error {
		c.WesternElectric = true
		return nil
	}
}

func Title(title string) ConfigOption {
	return func(c *Config) error {
		c.Title = title
		return nil
	}
}

func Units(units string) ConfigOption {
	return func(c *Config) error {
		c.Units = units
		return nil
	}
}

// Plot renders every chart series to <prefix>-<series>.png
func Plot(prefix string) ConfigOption {
	return func(c *Config) error {
		c.Plot = prefix
		return nil
	}
}

// Output selects the report format, text or yaml
func Output(format string) ConfigOption {
	return func(c *Config) error {
		switch f := OutputFormat(strings.ToLower(format)); f {
		case TextOutput, YAMLOutput:
			c.Output = f
			return nil
		default:
			return fmt.Errorf("unknown output format %q, expected text or yaml", format)
		}
	}
}

func LogLevel(level string) ConfigOption {
	return func(c *Config) error {
		l, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("unknown log level %q", level)
		}
		c.LogLevel = l
		return nil
	}
}

// RollbarToken enables reporting of unexpected errors to Rollbar
func RollbarToken(token string) ConfigOption {
	return func(c *Config) error {
		c.RollbarToken = token
		return nil
	}
}

func NoErrorReports() ConfigOption {
	return func(c *Config) error {
		c.NoErrorReports = true
		return nil
	}
}

func parseFloat(name string, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("could not convert %s to a number: %s", name, value)
	}
	return v, nil
}
