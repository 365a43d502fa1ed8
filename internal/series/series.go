package series

import (
	"math"
	"time"
)

// Record is one row of a temperature history: the raw fields parsed from
// input plus the derived fields attached by the analysis pipeline.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	City        string    `json:"city"`
	Season      string    `json:"season"`
	Temperature float64   `json:"temperature"`

	// Derived by the pipeline. StdDev is NaN while the trailing window
	// holds a single sample; IsAnomaly is meaningful only after
	// classification has run.
	MovingAvg float64 `json:"movingAvg"`
	StdDev    Float64 `json:"stdDev"`
	IsAnomaly bool    `json:"isAnomaly"`
}

// Series is an ordered sequence of records. Order is input row order;
// no sorting by timestamp is performed, so rolling windows follow the
// order rows arrived in.
type Series []Record

// Cities returns the distinct city names in first-seen order.
func (s Series) Cities() []string {
	seen := make(map[string]struct{})
	var cities []string
	for _, r := range s {
		if _, ok := seen[r.City]; ok {
			continue
		}
		seen[r.City] = struct{}{}
		cities = append(cities, r.City)
	}
	return cities
}

// FilterCity returns the subsequence of records for one city,
// preserving row order.
func (s Series) FilterCity(city string) Series {
	var out Series
	for _, r := range s {
		if r.City == city {
			out = append(out, r)
		}
	}
	return out
}

// LastSeason returns the season of the last record for the given city,
// or "" when the city has no records. The dashboard uses it as the
// default season when classifying a live reading.
func (s Series) LastSeason(city string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].City == city {
			return s[i].Season
		}
	}
	return ""
}

// Temperatures returns the temperature column as a slice.
func (s Series) Temperatures() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Temperature
	}
	return out
}

// Clone returns a deep copy. Records are value types, so a slice copy
// is sufficient; callers that annotate a series should annotate a clone
// rather than the stored original.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// NewRecord builds a record with derived fields in their pre-analysis
// state (StdDev undefined).
func NewRecord(ts time.Time, city, season string, temp float64) Record {
	return Record{
		Timestamp:   ts,
		City:        city,
		Season:      season,
		Temperature: temp,
		StdDev:      Float64(math.NaN()),
	}
}
