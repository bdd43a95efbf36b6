package shewhart

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
	"github.com/spf13/pflag"
)

type options struct {
	options []ConfigOption
	err     error
}

// ParseCommandLine configures the chart from command line options or from a YAML configuration
// file passed with the -c flag.  Positional arguments are the measurements file, the chart type
// and the sample size, in that order.
func ParseCommandLine() ([]ConfigOption, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is ParseCommandLine for an explicit argument list, without the program name
func ParseArgs(args []string) ([]ConfigOption, error) {
	return parse(args, createFlagSet())
}

func parse(args []string, pf *pflag.FlagSet) ([]ConfigOption, error) {
	options := options{}
	if err := pf.ParseAll(args, parseFlag(&options)); err != nil {
		return options.options, err
	}
	if options.err != nil {
		return options.options, options.err
	}
	positional, err := parsePositional(pf.Args())
	if err != nil {
		return options.options, err
	}
	// flags and the config file take precedence over positional arguments
	return append(positional, options.options...), nil
}

func parsePositional(args []string) ([]ConfigOption, error) {
	handlers := []func(string) ConfigOption{Input, ChartType, SampleSize}
	if len(args) > len(handlers) {
		return nil, fmt.Errorf("too many arguments: %v", args[len(handlers):])
	}
	var out []ConfigOption
	for i, arg := range args {
		out = append(out, handlers[i](arg))
	}
	return out, nil
}

func createFlagSet() *pflag.FlagSet {
	pf := pflag.NewFlagSet("shewhart", pflag.ContinueOnError)
	pf.Usage = func() {
		fmt.Printf("Usage of shewhart:\nshewhart <options> <csv-file> <xbar-r|xbar-s|cusum|attribute> <sample-size>\nshewhart -c config.yml <options>\n")
		fmt.Printf("\n%s", pf.FlagUsagesWrapped(10))
		fmt.Printf("\nExits with status 100 when the process is not in control.\n")
	}

	pf.StringP("config", "c", "", "Use yaml configuration file")
	pf.StringP("input", "i", "", "CSV file of measurements, one <value> or <time>,<value> per line")
	pf.String("chart", "", "Chart type: xbar-r, xbar-s, cusum or attribute")
	pf.StringP("sample-size", "n", "5", "Number of consecutive measurements in each sample")
	pf.String("cusum-target", "", "Target value of the process mean (required for cusum charts)")
	pf.String("cusum-k", "0.5", "CUSUM slack in multiples of the process sigma")
	pf.String("cusum-h", "4", "CUSUM decision interval in multiples of the process sigma")
	pf.BoolP("we-rules", "w", false, "Evaluate the sample means against the Western Electric rules")
	pf.StringP("title", "t", "Unknown Data", "Title of the report")
	pf.StringP("units", "u", "", "Units of the measurements")
	pf.StringP("output", "o", "text", "Report format: text or yaml")
	pf.String("plot", "", "Render each chart series to <prefix>-<series>.png")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("rollbar-token", "", "Report unexpected errors to Rollbar using this token")
	pf.Bool("no-error-reports", false, "Do not send reports when there are unexpected errors")

	return pf
}

func parseFlag(o *options) func(*pflag.Flag, string) error {
	return func(flag *pflag.Flag, value string) error {
		switch flag.Name {
		case "config":
			opts, err := parseFromFile(value)
			if err != nil {
				o.err = err
				return err
			}
			o.options = append(o.options, opts...)
		default:
			option, err := handleOption(flag.Name, value)
			if err != nil {
				o.err = err
				return err
			}
			if option != nil {
				o.options = append(o.options, option)
			}
		}
		return nil
	}
}

// handleOption maps a flag or config key to its option.  Boolean flags set to false return a nil
// option.
func handleOption(name string, value string) (ConfigOption, error) {
	switch name {
	case "input":
		return Input(value), nil
	case "chart":
		return ChartType(value), nil
	case "sample-size":
		return SampleSize(value), nil
	case "cusum-target":
		return CUSUMTarget(value), nil
	case "cusum-k":
		return CUSUMK(value), nil
	case "cusum-h":
		return CUSUMH(value), nil
	case "we-rules":
		return boolOption(name, value, WesternElectric())
	case "title":
		return Title(value), nil
	case "units":
		return Units(value), nil
	case "output":
		return Output(value), nil
	case "plot":
		return Plot(value), nil
	case "log-level":
		return LogLevel(value), nil
	case "rollbar-token":
		return RollbarToken(value), nil
	case "no-error-reports":
		return boolOption(name, value, NoErrorReports())
	default:
		return nil, fmt.Errorf("Unknown option: %s", name)
	}
}

func boolOption(name string, value string, option ConfigOption) (ConfigOption, error) {
	if value == "" {
		return option, nil
	}
	set, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s, expected true or false: %s", name, value)
	}
	if !set {
		return nil, nil
	}
	return option, nil
}

func parseFromFile(fpath string) ([]ConfigOption, error) {
	var options []ConfigOption
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return options, err
	}

	cfg := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return options, err
	}
	for k, v := range cfg {
		var value string
		switch t := v.(type) {
		case string:
			value = t
		case int:
			value = strconv.Itoa(t)
		case float64:
			value = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			value = strconv.FormatBool(t)
		default:
			return options, fmt.Errorf("Could not process config key %s, unknown type", k)
		}
		opt, err := handleOption(k, value)
		if err != nil {
			return options, err
		}
		if opt != nil {
			options = append(options, opt)
		}
	}
	return options, nil
}
