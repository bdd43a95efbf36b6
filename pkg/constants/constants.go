// Package constants holds the tabulated SPC factors used to derive control limits from sample
// statistics.  Tables are plain values that are passed to the chart engine; nothing in this
// package is mutable global state.
package constants

import (
	"fmt"
	"sort"
)

// Factor names a column of the constant table
type Factor string

const (
	A2 Factor = "A2"
	A3 Factor = "A3"
	B3 Factor = "B3"
	B4 Factor = "B4"
	D3 Factor = "D3"
	D4 Factor = "D4"
)

// ConstantError is returned when a factor is not tabulated for a sample size
type ConstantError struct {
	Msg        string
	Factor     Factor
	SampleSize int
}

func (e ConstantError) Error() string {
	return e.Msg
}

// Table maps sample size to the value of one factor
type Table map[int]float64

// Tables is a versioned set of factor tables
type Tables struct {
	Version string
	A2      Table
	A3      Table
	B3      Table
	B4      Table
	D3      Table
	D4      Table
}

// Lookup returns the value of factor f for sample size n
func (t Tables) Lookup(f Factor, n int) (float64, error) {
	var table Table
	switch f {
	case A2:
		table = t.A2
	case A3:
		table = t.A3
	case B3:
		table = t.B3
	case B4:
		table = t.B4
	case D3:
		table = t.D3
	case D4:
		table = t.D4
	default:
		return 0, ConstantError{Msg: fmt.Sprintf("unknown factor %s", f), Factor: f, SampleSize: n}
	}
	v, ok := table[n]
	if !ok {
		return 0, ConstantError{
			Msg:        fmt.Sprintf("factor %s is not defined for sample size %d (table %s)", f, n, t.Version),
			Factor:     f,
			SampleSize: n,
		}
	}
	return v, nil
}

// SampleSizes returns the sample sizes for which every factor is tabulated, in ascending order
func (t Tables) SampleSizes() []int {
	var out []int
	for n := range t.A2 {
		if _, ok := t.A3[n]; !ok {
			continue
		}
		if _, ok := t.B3[n]; !ok {
			continue
		}
		if _, ok := t.B4[n]; !ok {
			continue
		}
		if _, ok := t.D3[n]; !ok {
			continue
		}
		if _, ok := t.D4[n]; !ok {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Supports reports whether every factor is tabulated for sample size n
func (t Tables) Supports(n int) bool {
	for _, f := range []Factor{A2, A3, B3, B4, D3, D4} {
		if _, err := t.Lookup(f, n); err != nil {
			return false
		}
	}
	return true
}

// row is one line of the published table: n, A2, A3, B3, B4, D3, D4
type row [7]float64

var astm = []row{
	{2, 1.880, 2.659, 0.000, 3.267, 0.000, 3.267},
	{3, 1.023, 1.954, 0.000, 2.568, 0.000, 2.574},
	{4, 0.729, 1.628, 0.000, 2.266, 0.000, 2.282},
	{5, 0.577, 1.427, 0.000, 2.089, 0.000, 2.114},
	{6, 0.483, 1.287, 0.030, 1.970, 0.000, 2.004},
	{7, 0.419, 1.182, 0.118, 1.882, 0.076, 1.924},
	{8, 0.373, 1.099, 0.185, 1.815, 0.136, 1.864},
	{9, 0.337, 1.032, 0.239, 1.761, 0.184, 1.816},
	{10, 0.308, 0.975, 0.284, 1.716, 0.223, 1.777},
	{11, 0.285, 0.927, 0.321, 1.679, 0.256, 1.744},
	{12, 0.266, 0.886, 0.354, 1.646, 0.283, 1.717},
	{13, 0.249, 0.850, 0.382, 1.618, 0.307, 1.693},
	{14, 0.235, 0.817, 0.406, 1.594, 0.328, 1.672},
	{15, 0.223, 0.789, 0.428, 1.572, 0.347, 1.653},
	{16, 0.212, 0.763, 0.448, 1.552, 0.363, 1.637},
	{17, 0.203, 0.739, 0.466, 1.534, 0.378, 1.622},
	{18, 0.194, 0.718, 0.482, 1.518, 0.391, 1.608},
	{19, 0.187, 0.698, 0.497, 1.503, 0.403, 1.597},
	{20, 0.180, 0.680, 0.510, 1.490, 0.415, 1.585},
	{21, 0.173, 0.663, 0.523, 1.477, 0.425, 1.575},
	{22, 0.167, 0.647, 0.534, 1.466, 0.434, 1.566},
	{23, 0.162, 0.633, 0.545, 1.455, 0.443, 1.557},
	{24, 0.157, 0.619, 0.555, 1.445, 0.451, 1.548},
	{25, 0.153, 0.606, 0.565, 1.435, 0.459, 1.541},
}

// Standard returns the ASTM STP-15D factors for sample sizes 2 through 25.  Each call returns
// fresh maps, so callers may modify their copy.
func Standard() Tables {
	t := Tables{
		Version: "astm-stp-15d",
		A2:      Table{},
		A3:      Table{},
		B3:      Table{},
		B4:      Table{},
		D3:      Table{},
		D4:      Table{},
	}
	for _, r := range astm {
		n := int(r[0])
		t.A2[n] = r[1]
		t.A3[n] = r[2]
		t.B3[n] = r[3]
		t.B4[n] = r[4]
		t.D3[n] = r[5]
		t.D4[n] = r[6]
	}
	return t
}
