package analysis

import (
	"math"
	"testing"
)

func summerBaseline() []float64 {
	return []float64{20, 22, 24, 26, 28}
}

func TestClassifyReadingNormal(t *testing.T) {
	hist := makeSeries("X", "summer", summerBaseline())

	got := ClassifyReading(24, "X", "summer", hist)
	if got.Verdict != VerdictNormal {
		t.Fatalf("expected %q, got %q", VerdictNormal, got.Verdict)
	}
	if got.SampleCount != 5 {
		t.Fatalf("expected 5 baseline samples, got %d", got.SampleCount)
	}
	if !almostEqual(float64(got.Mean), 24) {
		t.Fatalf("expected baseline mean 24, got %v", got.Mean)
	}
	if !almostEqual(float64(got.Std), math.Sqrt(10)) {
		t.Fatalf("expected baseline std sqrt(10), got %v", got.Std)
	}
}

func TestClassifyReadingAnomalous(t *testing.T) {
	hist := makeSeries("X", "summer", summerBaseline())

	if got := ClassifyReading(40, "X", "summer", hist); got.Verdict != VerdictAnomalous {
		t.Fatalf("expected %q, got %q", VerdictAnomalous, got.Verdict)
	}
	if got := ClassifyReading(5, "X", "summer", hist); got.Verdict != VerdictAnomalous {
		t.Fatalf("expected %q for a low reading, got %q", VerdictAnomalous, got.Verdict)
	}
}

func TestClassifyReadingBandEdges(t *testing.T) {
	hist := makeSeries("X", "summer", summerBaseline())
	upper := 24 + 2*math.Sqrt(10)

	// Readings on the band edge are inside it.
	if got := ClassifyReading(upper, "X", "summer", hist); got.Verdict != VerdictNormal {
		t.Fatalf("edge reading should be normal, got %q", got.Verdict)
	}
	if got := ClassifyReading(upper+0.01, "X", "summer", hist); got.Verdict != VerdictAnomalous {
		t.Fatalf("reading beyond the edge should be anomalous, got %q", got.Verdict)
	}
}

func TestClassifyReadingFiltersCityAndSeason(t *testing.T) {
	// Extreme readings in other cities and seasons must not leak into
	// the baseline.
	hist := append(makeSeries("X", "summer", summerBaseline()),
		makeSeries("Y", "summer", []float64{-100, -100, -100})...)
	hist = append(hist, makeSeries("X", "winter", []float64{-30, -30, -30})...)

	got := ClassifyReading(24, "X", "summer", hist)
	if got.SampleCount != 5 {
		t.Fatalf("expected only the 5 (X, summer) samples, got %d", got.SampleCount)
	}
	if got.Verdict != VerdictNormal {
		t.Fatalf("expected %q, got %q", VerdictNormal, got.Verdict)
	}
}

func TestClassifyReadingEmptyBaselineDefaultsToNormal(t *testing.T) {
	hist := makeSeries("X", "summer", summerBaseline())

	// Zero matching records: the band is undefined and the reading
	// falls back to normal rather than erroring.
	got := ClassifyReading(1000, "Z", "summer", hist)
	if got.Verdict != VerdictNormal {
		t.Fatalf("expected fallback to %q, got %q", VerdictNormal, got.Verdict)
	}
	if got.SampleCount != 0 {
		t.Fatalf("expected 0 baseline samples, got %d", got.SampleCount)
	}
	if !got.Mean.IsNaN() || !got.Std.IsNaN() {
		t.Fatalf("expected NaN baseline, got mean=%v std=%v", got.Mean, got.Std)
	}
}

func TestClassifyReadingSingleSampleDefaultsToNormal(t *testing.T) {
	hist := makeSeries("X", "summer", []float64{24})

	got := ClassifyReading(1000, "X", "summer", hist)
	if got.Verdict != VerdictNormal {
		t.Fatalf("one sample defines no deviation; expected %q, got %q", VerdictNormal, got.Verdict)
	}
	if got.SampleCount != 1 {
		t.Fatalf("expected 1 baseline sample, got %d", got.SampleCount)
	}
}
