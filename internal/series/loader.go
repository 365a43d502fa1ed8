package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyInput is returned when the input has no data rows.
	ErrEmptyInput = errors.New("input contains no records")
)

var requiredColumns = []string{"timestamp", "city", "season", "temperature"}

// timestampLayouts are tried in order when parsing the timestamp column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load parses a CSV temperature history into a Series. The header must
// contain timestamp, city, season and temperature columns (any order,
// extra columns ignored). Any row that fails to parse fails the whole
// load; the pipeline never sees a partially loaded series.
func Load(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var s Series
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		ts, err := parseTimestamp(row[idx["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		temp, err := strconv.ParseFloat(row[idx["temperature"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid temperature %q", line, row[idx["temperature"]])
		}

		s = append(s, NewRecord(ts, row[idx["city"]], row[idx["season"]], temp))
	}

	if len(s) == 0 {
		return nil, ErrEmptyInput
	}
	return s, nil
}

func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
}
