package analysis

import (
	"github.com/tempdash/temperature-dashboard/internal/series"
)

// FlagAnomalies marks every record whose temperature falls outside
// mean ± 2·stddev of its own trailing statistics. A record with an
// undefined (NaN) standard deviation is never anomalous: comparisons
// against NaN are false in both directions.
//
// Requires ComputeRollingStats to have run first; annotates in place.
func FlagAnomalies(s series.Series) series.Series {
	for i := range s {
		sd := float64(s[i].StdDev)
		upper := s[i].MovingAvg + 2*sd
		lower := s[i].MovingAvg - 2*sd
		s[i].IsAnomaly = s[i].Temperature > upper || s[i].Temperature < lower
	}
	return s
}
