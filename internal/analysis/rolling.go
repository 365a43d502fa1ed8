package analysis

import (
	"math"

	"github.com/tempdash/temperature-dashboard/internal/series"
)

// DefaultWindow is the trailing window used when the caller does not
// configure one.
const DefaultWindow = 30

// ComputeRollingStats annotates every record with the mean and sample
// standard deviation of the trailing window of up to `window` records
// ending at that record. Windows shorter than `window` are allowed at
// the start (minimum one sample); the standard deviation of a
// single-sample window is NaN, since no variance is definable.
//
// The input is annotated in place and returned for chaining.
func ComputeRollingStats(s series.Series, window int) series.Series {
	if window < 1 {
		window = 1
	}

	var sum, sumSq float64
	for i := range s {
		v := s[i].Temperature
		sum += v
		sumSq += v * v

		if i >= window {
			old := s[i-window].Temperature
			sum -= old
			sumSq -= old * old
		}

		n := i + 1
		if n > window {
			n = window
		}

		mean := sum / float64(n)
		s[i].MovingAvg = mean

		if n < 2 {
			s[i].StdDev = series.Float64(math.NaN())
			continue
		}
		// Sample variance, N-1 denominator.
		variance := (sumSq - float64(n)*mean*mean) / float64(n-1)
		if variance < 0 {
			variance = 0
		}
		s[i].StdDev = series.Float64(math.Sqrt(variance))
	}
	return s
}
