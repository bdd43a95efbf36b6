// Package plot renders control chart series as PNG line charts with their center line, control
// limits and flagged samples.
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/BTBurke/shewhart/pkg/chart"
	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options label the rendered charts
type Options struct {
	Title string
	Units string
	// XLabel names the x axis, "Sample" when empty
	XLabel string
}

func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, dashed bool) gochart.Style {
	s := gochart.Style{StrokeColor: col, StrokeWidth: 1.5}
	if dashed {
		s.StrokeDashArray = []float64{5.0, 5.0}
	}
	return s
}

// Render writes series s of res as a PNG to w.  x holds one axis value per point.
func Render(w io.Writer, res *chart.Result, s chart.Series, x []float64, o Options) error {
	if len(x) != len(s.Values) {
		return fmt.Errorf("series %s has %d values but the axis has %d", s.Name, len(s.Values), len(x))
	}
	if len(x) < 2 {
		return fmt.Errorf("series %s needs at least two points to plot", s.Name)
	}

	center := make([]float64, len(x))
	upper := make([]float64, len(x))
	lower := make([]float64, len(x))
	for i := range x {
		l := s.LimitsAt(i)
		center[i], upper[i], lower[i] = l.Center, l.Upper, l.Lower
	}

	series := []gochart.Series{
		gochart.ContinuousSeries{Name: s.Name, XValues: x, YValues: s.Values, Style: lineStyle(drawing.ColorBlue, false)},
		gochart.ContinuousSeries{Name: "CL", XValues: x, YValues: center, Style: lineStyle(drawing.ColorBlack, false)},
		gochart.ContinuousSeries{Name: "UCL", XValues: x, YValues: upper, Style: lineStyle(drawing.ColorRed, true)},
		gochart.ContinuousSeries{Name: "LCL", XValues: x, YValues: lower, Style: lineStyle(drawing.ColorRed, true)},
	}
	if flagged := flaggedPoints(res, s); len(flagged) > 0 {
		fx := make([]float64, len(flagged))
		fy := make([]float64, len(flagged))
		for j, i := range flagged {
			fx[j], fy[j] = x[i], s.Values[i]
		}
		series = append(series, gochart.ContinuousSeries{Name: "flagged", XValues: fx, YValues: fy, Style: pointStyle(drawing.ColorRed)})
	}

	xlabel := o.XLabel
	if xlabel == "" {
		xlabel = "Sample"
	}
	ylabel := s.Name
	if o.Units != "" {
		ylabel = fmt.Sprintf("%s (%s)", s.Name, o.Units)
	}
	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s: %s", o.Title, res.Kind),
		XAxis:  gochart.XAxis{Name: xlabel},
		YAxis:  gochart.YAxis{Name: ylabel},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return errors.Wrapf(err, "failed to render %s", s.Name)
	}
	return nil
}

// WriteFiles renders every series of res to <prefix>-<series>.png and returns the paths written
func WriteFiles(prefix string, res *chart.Result, x []float64, o Options) ([]string, error) {
	var paths []string
	for _, s := range res.Series {
		path := fmt.Sprintf("%s-%s.png", prefix, s.Name)
		f, err := os.Create(path)
		if err != nil {
			return paths, errors.Wrapf(err, "failed to create plot %s", path)
		}
		err = Render(f, res, s, x, o)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// flaggedPoints returns the indices outside the limits of s, plus the Western Electric violators
// when s is the means series
func flaggedPoints(res *chart.Result, s chart.Series) []int {
	seen := make(map[int]bool)
	var out []int
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	for _, i := range s.OutOfLimits {
		add(i)
	}
	if s.Name == chart.Means {
		for _, v := range res.Violations {
			for _, i := range v.Indices {
				add(i)
			}
		}
	}
	return out
}
