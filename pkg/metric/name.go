package metric

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-logfmt/logfmt"
)

type labels map[string]string

// Name identifies one reported chart value.  The chart kind comes first and labels narrow it down
// to a single number, e.g. xbar-r[series=means value=ucl].  Labels with an empty value are
// annotations and are rendered after the key=value pairs, prefixed by @.
type Name struct {
	chart  string
	labels labels
}

// NewName returns a name for chart with a copy of the given labels
func NewName(chart string, l map[string]string) Name {
	n := Name{chart: chart, labels: make(labels, len(l))}
	for k, v := range l {
		n.labels[k] = v
	}
	return n
}

// Chart returns the chart part of the name
func (n Name) Chart() string {
	return n.chart
}

// Label returns the value of label k
func (n Name) Label(k string) (string, bool) {
	v, ok := n.labels[k]
	return v, ok
}

// With returns a copy of n with the labels upserted
func (n Name) With(l map[string]string) Name {
	out := NewName(n.chart, n.labels)
	for k, v := range l {
		out.labels[k] = v
	}
	return out
}

// Annotate returns a copy of n with the annotations added
func (n Name) Annotate(ann ...string) Name {
	out := NewName(n.chart, n.labels)
	for _, a := range ann {
		out.labels[a] = ""
	}
	return out
}

// String marshals the name, such as xbar-r[series=means value=ucl @westernelectric]
func (n Name) String() string {
	l, err := MarshalText(n.labels)
	if err != nil {
		l = []byte{}
	}
	return n.chart + string(l)
}

// MarshalText encodes labels as a modified logfmt.  Labels open with a [ followed by k=v pairs in
// sorted key order, then annotations starting with @ in sorted order, and close with a ].  No
// labels encode to the empty string.
func MarshalText(l map[string]string) ([]byte, error) {
	if len(l) == 0 {
		return []byte{}, nil
	}
	keys := make([]string, 0, len(l))
	ann := make([]string, 0, len(l))
	for k, v := range l {
		switch v {
		case "":
			ann = append(ann, fmt.Sprintf("@%s", k))
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	sort.Strings(ann)

	var b bytes.Buffer
	b.WriteString("[")
	e := logfmt.NewEncoder(&b)
	for _, k := range keys {
		if err := e.EncodeKeyval(k, l[k]); err != nil {
			return nil, fmt.Errorf("failed to encode %s=%s: %v", k, l[k], err)
		}
	}
	if len(keys) > 0 && len(ann) > 0 {
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(ann, " "))
	b.WriteString("]")
	return b.Bytes(), nil
}
