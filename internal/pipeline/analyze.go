// Package pipeline wires the scoring stages together:
// engagement aggregation, bot detection, trust scoring, recommendation.
package pipeline

import (
	"fmt"

	"trustscope/internal/analytics"
	"trustscope/internal/botdetect"
	"trustscope/internal/model"
	"trustscope/internal/recommend"
	"trustscope/internal/synth"
	"trustscope/internal/trust"
	"trustscope/internal/util"
)

// Analyze scores one account. With live == nil the record is generated from
// the handle and the result is flagged as estimated; items are only used
// alongside live metrics. live is never modified.
func Analyze(handle, platform string, live *model.AccountMetrics, items []model.ContentItem) (model.AnalysisResult, error) {
	handle = util.NormalizeHandle(handle)
	if handle == "" {
		return model.AnalysisResult{}, fmt.Errorf("%w: empty handle", model.ErrInvalidInput)
	}

	var m model.AccountMetrics
	if live == nil {
		gen, err := synth.Generate(handle, platform)
		if err != nil {
			return model.AnalysisResult{}, err
		}
		m, items = gen, nil
	} else {
		m = live.Clone()
		if m.Handle == "" {
			m.Handle = "@" + handle
		}
		if m.Platform == "" {
			m.Platform = platform
		}
		if m.Name == "" {
			m.Name = synth.DisplayName(handle)
		}
		if m.Provenance == "" {
			m.Provenance = model.ProvenanceLive
		}
	}
	if err := m.Validate(); err != nil {
		return model.AnalysisResult{}, err
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return model.AnalysisResult{}, err
		}
	}
	return score(m, items), nil
}

func score(m model.AccountMetrics, items []model.ContentItem) model.AnalysisResult {
	var res model.AnalysisResult
	if len(items) > 0 {
		stats := analytics.Aggregate(items, m.Followers)
		m = m.WithEngagement(stats)
		res.Engagement = &stats
	}

	res.Bot = botdetect.Analyze(m, items)
	m = m.WithBotAnalysis(res.Bot)

	res.Trust = trust.Calculate(m, &res.Bot)
	m = m.WithTrustScore(res.Trust)

	res.Recommendation = recommend.For(res.Trust.Overall, m.BotPercentage, m.EngagementRate)
	res.Account = m
	res.Provenance = m.Provenance
	res.Estimated = m.Provenance != model.ProvenanceLive
	return res
}
