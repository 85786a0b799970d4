package pipeline

import (
	"context"
	"errors"
	"fmt"

	"trustscope/internal/logging"
	"trustscope/internal/metrics"
	"trustscope/internal/model"
	"trustscope/internal/synth"
	"trustscope/internal/util"
)

// ErrUnavailable is what a Source returns when it has nothing for a handle
// or cannot be reached.
var ErrUnavailable = errors.New("live data unavailable")

// Source supplies already-fetched account data.
type Source interface {
	Fetch(ctx context.Context, handle, platform string) (model.Snapshot, error)
}

// Analyzer resolves where an account's data comes from and scores it.
// Source failures are not errors: the analyzer falls back to the demo
// catalogue (when enabled) and then to generated data.
type Analyzer struct {
	source   Source
	demos    bool
	platform string
}

type Option func(*Analyzer)

// WithSource sets the live-data collaborator.
func WithSource(s Source) Option { return func(a *Analyzer) { a.source = s } }

// WithDemos enables the built-in demo accounts.
func WithDemos(enabled bool) Option { return func(a *Analyzer) { a.demos = enabled } }

// WithPlatform sets the platform used when a request names none.
func WithPlatform(p string) Option { return func(a *Analyzer) { a.platform = p } }

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{platform: "tiktok"}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze looks handle up in the source and scores whatever it resolves to.
func (a *Analyzer) Analyze(ctx context.Context, handle, platform string) (model.AnalysisResult, error) {
	handle = util.NormalizeHandle(handle)
	if handle == "" {
		return model.AnalysisResult{}, fmt.Errorf("%w: empty handle", model.ErrInvalidInput)
	}
	if platform == "" {
		platform = a.platform
	}

	if a.source != nil {
		snap, err := a.source.Fetch(ctx, handle, platform)
		switch {
		case err == nil:
			return a.AnalyzeRecord(handle, platform, &snap.Account, snap.Items)
		case ctx.Err() != nil:
			return model.AnalysisResult{}, ctx.Err()
		default:
			fields := map[string]any{"handle": handle, "platform": platform, "error": err.Error()}
			if errors.Is(err, ErrUnavailable) {
				metrics.IncFallback("unavailable")
				logging.Info("live_data_fallback", fields)
			} else {
				metrics.IncFallback("error")
				logging.Warn("live_data_fallback", fields)
			}
		}
	}

	if a.demos {
		if m, ok := synth.Demo(handle); ok {
			return a.AnalyzeRecord(handle, platform, &m, nil)
		}
	}
	return a.AnalyzeRecord(handle, platform, nil, nil)
}

// AnalyzeRecord scores a caller-supplied record and records metrics.
func (a *Analyzer) AnalyzeRecord(handle, platform string, live *model.AccountMetrics, items []model.ContentItem) (model.AnalysisResult, error) {
	if platform == "" {
		platform = a.platform
	}
	res, err := Analyze(handle, platform, live, items)
	if err != nil {
		return res, err
	}
	metrics.ObserveAnalysis(string(res.Provenance), res.Trust.Overall, res.Bot.BotPercentage)
	logging.Debug("analysis_done", map[string]any{
		"handle":     res.Account.Handle,
		"provenance": res.Provenance,
		"trust":      res.Trust.Overall,
		"bot":        res.Bot.BotPercentage,
	})
	return res, nil
}

// Followings resolves each handle through the source. Handles the source
// reports as unavailable are skipped; generated data says nothing about a
// real following. Any other source error aborts.
func (a *Analyzer) Followings(ctx context.Context, handles []string, platform string) ([]model.AccountMetrics, error) {
	if platform == "" {
		platform = a.platform
	}
	out := make([]model.AccountMetrics, 0, len(handles))
	if a.source == nil {
		return out, nil
	}
	for _, h := range handles {
		snap, err := a.source.Fetch(ctx, h, platform)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			if errors.Is(err, ErrUnavailable) {
				continue
			}
			return out, fmt.Errorf("fetch following %s: %w", h, err)
		}
		out = append(out, snap.Account)
	}
	return out, nil
}
