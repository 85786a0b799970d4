// Package jobs runs multi-account work on top of the pipeline: batch
// analysis, following audits and directory imports.
package jobs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"trustscope/internal/logging"
	"trustscope/internal/metrics"
	"trustscope/internal/model"
	"trustscope/internal/pipeline"
)

const defaultWorkers = 4

// BatchItem is one handle's outcome. Exactly one of Result and Error is set.
type BatchItem struct {
	Handle string                `json:"handle"`
	Result *model.AnalysisResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// AnalyzeBatch analyses handles concurrently with at most workers in flight.
// Output order matches input order. A failing handle does not stop the
// others; only cancellation of ctx does.
func AnalyzeBatch(ctx context.Context, a *pipeline.Analyzer, handles []string, platform string, workers int) ([]BatchItem, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}
	start := time.Now()
	out := make([]BatchItem, len(handles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, h := range handles {
		i, h := i, h
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].Handle = h
			res, err := a.Analyze(gctx, h, platform)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				out[i].Error = err.Error()
				return nil
			}
			out[i].Result = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	metrics.ObserveBatchDuration(start)
	logging.Info("batch_done", map[string]any{"handles": len(handles), "workers": workers, "elapsed_ms": time.Since(start).Milliseconds()})
	return out, nil
}
