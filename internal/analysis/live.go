package analysis

import (
	"github.com/tempdash/temperature-dashboard/internal/series"
)

// Fixed verdicts for a live reading checked against the seasonal baseline.
const (
	VerdictNormal    = "within normal range"
	VerdictAnomalous = "anomalous temperature"
)

// LiveClassification is the outcome of checking one live reading against
// the historical (city, season) baseline.
type LiveClassification struct {
	City        string  `json:"city"`
	Season      string  `json:"season"`
	Temperature float64 `json:"temperature"`
	Verdict     string  `json:"verdict"`

	// Baseline the reading was compared against. Mean/Std are NaN and
	// the verdict defaults to normal when fewer than two historical
	// records match the (city, season) pair.
	SampleCount int            `json:"sampleCount"`
	Mean        series.Float64 `json:"mean"`
	Std         series.Float64 `json:"std"`
}

// ClassifyReading checks a live temperature against the mean ± 2·stddev
// band of all historical records matching both city and season. The full
// unfiltered series is expected; filtering happens here.
//
// When the filtered subset has fewer than two records the band is
// undefined (NaN) and both out-of-band comparisons are false, so the
// reading falls back to "within normal range". SampleCount lets callers
// see how thin the baseline was.
func ClassifyReading(current float64, city, season string, s series.Series) LiveClassification {
	var temps []float64
	for _, r := range s {
		if r.City == city && r.Season == season {
			temps = append(temps, r.Temperature)
		}
	}

	mean, std := meanStd(temps)
	lower := mean - 2*std
	upper := mean + 2*std

	verdict := VerdictNormal
	if current < lower || current > upper {
		verdict = VerdictAnomalous
	}

	return LiveClassification{
		City:        city,
		Season:      season,
		Temperature: current,
		Verdict:     verdict,
		SampleCount: len(temps),
		Mean:        series.Float64(mean),
		Std:         series.Float64(std),
	}
}
