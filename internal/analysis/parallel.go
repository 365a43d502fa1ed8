package analysis

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tempdash/temperature-dashboard/internal/series"
)

// DefaultChunks is the fixed worker count used when the caller does not
// configure one. The split is positional; chunk boundaries cut across
// whatever seasonal structure the series has.
const DefaultChunks = 4

// splitChunks partitions s into exactly n contiguous chunks by position,
// sizes differing by at most one with the larger chunks first. Chunks
// beyond len(s) come back empty.
func splitChunks(s series.Series, n int) []series.Series {
	if n < 1 {
		n = 1
	}
	chunks := make([]series.Series, n)
	size := len(s) / n
	rem := len(s) % n

	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		chunks[i] = s[start:end]
		start = end
	}
	return chunks
}

// AnalyzeParallel runs the rolling-statistics engine over a series using
// `chunks` independent workers, then flags anomalies once over the
// reassembled whole. Each worker owns a private copy of its chunk;
// rolling windows never cross a chunk boundary, so statistics near the
// internal boundaries differ slightly from an unchunked run. That is
// the accepted cost of the parallel split.
//
// Any worker failure fails the whole run with no partial result.
// Returns the annotated series and the elapsed wall-clock seconds.
func AnalyzeParallel(ctx context.Context, s series.Series, window, chunks int) (series.Series, float64, error) {
	start := time.Now()

	if chunks < 1 {
		chunks = DefaultChunks
	}

	parts := splitChunks(s, chunks)
	results := make([]series.Series, len(parts))

	g, _ := errgroup.WithContext(ctx)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			// Workers share nothing: each gets its own copy and
			// writes only its own result slot.
			results[i] = ComputeRollingStats(part.Clone(), window)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("parallel analysis: %w", err)
	}

	out := make(series.Series, 0, len(s))
	for _, r := range results {
		out = append(out, r...)
	}
	FlagAnomalies(out)

	return out, time.Since(start).Seconds(), nil
}
