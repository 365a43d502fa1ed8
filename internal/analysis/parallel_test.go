package analysis

import (
	"context"
	"testing"
)

func TestSplitChunksEvenly(t *testing.T) {
	s := makeSeries("X", "winter", make([]float64, 10))
	chunks := splitChunks(s, 4)

	want := []int{3, 3, 2, 2}
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) != want[i] {
			t.Errorf("chunk %d: expected %d records, got %d", i, want[i], len(c))
		}
	}
}

func TestSplitChunksSmallSeries(t *testing.T) {
	s := makeSeries("X", "winter", []float64{1, 2})
	chunks := splitChunks(s, 4)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != 2 {
		t.Fatalf("chunks lost records: total %d", total)
	}
}

func TestAnalyzeParallelPreservesOrder(t *testing.T) {
	temps := []float64{5, 1, 9, 2, 8, 3, 7, 4, 6, 0, 5.5, 1.5, 9.5}
	s := makeSeries("X", "winter", temps)

	out, elapsed, err := AnalyzeParallel(context.Background(), s, 30, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed < 0 {
		t.Fatalf("elapsed time must be non-negative, got %v", elapsed)
	}
	if len(out) != len(s) {
		t.Fatalf("expected %d records, got %d", len(s), len(out))
	}
	for i := range out {
		if out[i].Temperature != temps[i] {
			t.Fatalf("record %d out of order: expected %v, got %v", i, temps[i], out[i].Temperature)
		}
		if !out[i].Timestamp.Equal(s[i].Timestamp) {
			t.Fatalf("record %d timestamp mismatch", i)
		}
	}
}

func TestAnalyzeParallelChunkStartsUndefined(t *testing.T) {
	// 12 records in 4 chunks of 3: every chunk's first record has a
	// single-sample window and therefore no deviation.
	s := makeSeries("X", "winter", make([]float64, 12))
	out, _, err := AnalyzeParallel(context.Background(), s, 30, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, i := range []int{0, 3, 6, 9} {
		if !out[i].StdDev.IsNaN() {
			t.Errorf("record %d starts a chunk and should have NaN std, got %v", i, out[i].StdDev)
		}
		if out[i].IsAnomaly {
			t.Errorf("record %d starts a chunk and should never be anomalous", i)
		}
	}
}

func TestAnalyzeParallelDoesNotMutateInput(t *testing.T) {
	s := makeSeries("X", "winter", []float64{1, 2, 3, 4, 5, 6, 7, 8})
	if _, _, err := AnalyzeParallel(context.Background(), s, 30, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range s {
		if !s[i].StdDev.IsNaN() || s[i].IsAnomaly {
			t.Fatalf("input series was mutated at record %d", i)
		}
	}
}

// A spike landing exactly on a chunk boundary is a known discrepancy:
// its trailing window restarts with the chunk, so the chunked run sees
// no deviation while a whole-series run flags it.
func TestChunkBoundaryPerturbation(t *testing.T) {
	temps := make([]float64, 16)
	for i := range temps {
		temps[i] = 10
	}
	temps[8] = 50 // first record of chunk 2 when split 4 ways

	whole := FlagAnomalies(ComputeRollingStats(makeSeries("X", "winter", temps), 30))
	if !whole[8].IsAnomaly {
		t.Fatal("whole-series run should flag the spike at position 8")
	}

	chunked, _, err := AnalyzeParallel(context.Background(), makeSeries("X", "winter", temps), 30, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunked[8].IsAnomaly {
		t.Fatal("chunked run restarts the window at position 8 and should not flag it")
	}
	if !chunked[8].StdDev.IsNaN() {
		t.Fatalf("expected NaN std at the chunk boundary, got %v", chunked[8].StdDev)
	}
}

func TestAnalyzeParallelMatchesSequentialWithinChunks(t *testing.T) {
	// Away from chunk boundaries a window that fits entirely inside one
	// chunk produces identical statistics to a sequential run.
	temps := []float64{3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25}
	window := 2

	seq := ComputeRollingStats(makeSeries("X", "winter", temps), window)
	par, _, err := AnalyzeParallel(context.Background(), makeSeries("X", "winter", temps), window, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Chunks of 3: positions 2, 5, 8, 11 have full in-chunk windows.
	for _, i := range []int{2, 5, 8, 11} {
		if !almostEqual(par[i].MovingAvg, seq[i].MovingAvg) {
			t.Errorf("record %d: chunked mean %v differs from sequential %v", i, par[i].MovingAvg, seq[i].MovingAvg)
		}
		if !almostEqual(float64(par[i].StdDev), float64(seq[i].StdDev)) {
			t.Errorf("record %d: chunked std %v differs from sequential %v", i, par[i].StdDev, seq[i].StdDev)
		}
	}
}
