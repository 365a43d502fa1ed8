package analysis

import (
	"math"
	"sort"

	"github.com/tempdash/temperature-dashboard/internal/series"
)

// SeasonExtremes is the max/min temperature observed for one season.
type SeasonExtremes struct {
	Season string  `json:"season"`
	Max    float64 `json:"maxTemperature"`
	Min    float64 `json:"minTemperature"`
}

// SummaryStats is a single-row description of the temperature column:
// count, mean, sample standard deviation, min, quartiles, max.
// Fields are NaN-tolerant: a single-record series has no sample
// deviation and an empty series has no statistics at all.
type SummaryStats struct {
	Count int            `json:"count"`
	Mean  series.Float64 `json:"mean"`
	Std   series.Float64 `json:"std"`
	Min   series.Float64 `json:"min"`
	P25   series.Float64 `json:"p25"`
	P50   series.Float64 `json:"p50"`
	P75   series.Float64 `json:"p75"`
	Max   series.Float64 `json:"max"`
}

// SeasonalExtremes groups the series by season and returns each season's
// max/min temperature, in first-seen season order.
func SeasonalExtremes(s series.Series) []SeasonExtremes {
	index := make(map[string]int)
	var out []SeasonExtremes

	for _, r := range s {
		i, ok := index[r.Season]
		if !ok {
			index[r.Season] = len(out)
			out = append(out, SeasonExtremes{Season: r.Season, Max: r.Temperature, Min: r.Temperature})
			continue
		}
		if r.Temperature > out[i].Max {
			out[i].Max = r.Temperature
		}
		if r.Temperature < out[i].Min {
			out[i].Min = r.Temperature
		}
	}
	return out
}

// Summarize computes descriptive statistics over the temperature column.
// An empty series yields count 0 and NaN for every statistic.
func Summarize(s series.Series) SummaryStats {
	temps := s.Temperatures()
	n := len(temps)
	if n == 0 {
		nan := series.Float64(math.NaN())
		return SummaryStats{Mean: nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan}
	}

	mean, std := meanStd(temps)

	sorted := append([]float64(nil), temps...)
	sort.Float64s(sorted)

	return SummaryStats{
		Count: n,
		Mean:  series.Float64(mean),
		Std:   series.Float64(std),
		Min:   series.Float64(sorted[0]),
		P25:   series.Float64(percentile(sorted, 0.25)),
		P50:   series.Float64(percentile(sorted, 0.50)),
		P75:   series.Float64(percentile(sorted, 0.75)),
		Max:   series.Float64(sorted[n-1]),
	}
}

// meanStd returns the arithmetic mean and sample standard deviation
// (N-1 denominator) of values. Std is NaN for fewer than two values.
func meanStd(values []float64) (float64, float64) {
	n := len(values)
	if n == 0 {
		return math.NaN(), math.NaN()
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	if n < 2 {
		return mean, math.NaN()
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(n-1))
}

// percentile computes the p-th percentile of sorted values using linear
// interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
