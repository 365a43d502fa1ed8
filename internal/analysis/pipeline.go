package analysis

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/tempdash/temperature-dashboard/internal/series"
)

// Options configures one analysis run.
type Options struct {
	Window int // trailing window size, DefaultWindow when <= 0
	Chunks int // parallel worker count, DefaultChunks when <= 0
}

// Result bundles everything the dashboard displays for one city:
// the annotated records, the seasonal tables and the timing of the
// parallel run.
type Result struct {
	RunID          string           `json:"runId"`
	City           string           `json:"city"`
	ElapsedSeconds float64          `json:"elapsedSeconds"`
	Records        series.Series    `json:"records"`
	Extremes       []SeasonExtremes `json:"seasonalExtremes"`
	Summary        SummaryStats     `json:"summary"`
}

// Run executes the full pipeline for one city's series: chunked parallel
// rolling statistics, anomaly flagging, seasonal extremes and the
// descriptive summary.
func Run(ctx context.Context, city string, s series.Series, opts Options) (*Result, error) {
	window := opts.Window
	if window <= 0 {
		window = DefaultWindow
	}
	chunks := opts.Chunks
	if chunks <= 0 {
		chunks = DefaultChunks
	}

	annotated, elapsed, err := AnalyzeParallel(ctx, s, window, chunks)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:          uuid.NewString(),
		City:           city,
		ElapsedSeconds: elapsed,
		Records:        annotated,
		Extremes:       SeasonalExtremes(annotated),
		Summary:        Summarize(annotated),
	}

	log.Printf("DEBUG: analysis run %s for %s: %d records in %.3fs", res.RunID, city, len(annotated), elapsed)
	return res, nil
}
