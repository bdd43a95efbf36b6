// Package csvimport reads measurement files with one value per row, optionally preceded by the
// time of the measurement:
//
//	<value>
//	<time>,<value>
//
// Times are parsed as seconds when numeric and as calendar strings otherwise.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BTBurke/shewhart/pkg/record"
	"github.com/pkg/errors"
)

// ReadFile opens path and reads it with Read
func ReadFile(path string) ([]record.Time, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open measurements file %s", path)
	}
	defer f.Close()

	times, values, err := Read(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read measurements file %s", path)
	}
	return times, values, nil
}

// Read returns the times and values of every row of r.  Rows with a single column have no time.
// Rows with any other number of columns fail with a record.ImportError naming the line.
func Read(r io.Reader) ([]record.Time, []float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var times []record.Time
	var values []float64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, record.ImportError{Msg: fmt.Sprintf("malformed csv: %v", err)}
		}
		line, _ := reader.FieldPos(0)

		var t record.Time
		var field string
		switch len(row) {
		case 1:
			t, field = record.None(), row[0]
		case 2:
			t, err = record.ParseTime(row[0])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "line %d", line)
			}
			field = row[1]
		default:
			return nil, nil, record.ImportError{Msg: fmt.Sprintf("line %d: csv file must contain either one or two columns, found %d", line, len(row))}
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, nil, record.ImportError{Msg: fmt.Sprintf("line %d: could not parse value %q", line, field)}
		}
		times = append(times, t)
		values = append(values, v)
	}
	return times, values, nil
}
