package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks records rejected before they reach scoring.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validate rejects records the scoring stages cannot take.
func (m AccountMetrics) Validate() error {
	if strings.TrimSpace(strings.TrimPrefix(m.Handle, "@")) == "" {
		return invalid("empty handle")
	}
	if m.Followers < 0 {
		return invalid("negative followers %d", m.Followers)
	}
	if m.Following < 0 {
		return invalid("negative following %d", m.Following)
	}
	if m.ContentCount != nil && *m.ContentCount < 0 {
		return invalid("negative content count %d", *m.ContentCount)
	}
	if m.EngagementRate < 0 {
		return invalid("negative engagement rate %.2f", m.EngagementRate)
	}
	if m.BotPercentage < 0 || m.BotPercentage > 100 {
		return invalid("bot percentage %.2f out of range", m.BotPercentage)
	}
	if n := len(m.Growth.Organic); n != 0 && n != GrowthWindow {
		return invalid("growth series has %d points, want %d", n, GrowthWindow)
	}
	if n := len(m.Growth.Suspicious); n != 0 && n != len(m.Growth.Organic) {
		return invalid("suspicious series has %d points, growth series has %d", n, len(m.Growth.Organic))
	}
	for i, v := range m.Growth.Organic {
		if v < 0 {
			return invalid("negative growth sample at day %d", i)
		}
	}
	for i, v := range m.Growth.Suspicious {
		if v < 0 {
			return invalid("negative suspicious magnitude at day %d", i)
		}
	}
	return nil
}

// Validate rejects negative counters.
func (c ContentItem) Validate() error {
	if c.Likes < 0 || c.Comments < 0 || c.Shares < 0 || c.Views < 0 {
		return invalid("content item %q has negative counters", c.ID)
	}
	return nil
}

// Clone returns a deep copy so callers can annotate without aliasing slices.
func (m AccountMetrics) Clone() AccountMetrics {
	out := m
	if m.ContentCount != nil {
		out.ContentCount = IntPtr(*m.ContentCount)
	}
	out.Growth.Organic = append([]int(nil), m.Growth.Organic...)
	out.Growth.Suspicious = append([]int(nil), m.Growth.Suspicious...)
	out.BotFactors = append([]string(nil), m.BotFactors...)
	return out
}

// WithEngagement returns a copy carrying the aggregated engagement figures.
func (m AccountMetrics) WithEngagement(s EngagementStats) AccountMetrics {
	out := m.Clone()
	out.EngagementRate = s.Rate
	out.Engagement = s.Breakdown
	return out
}

// WithBotAnalysis returns a copy carrying the detector output.
func (m AccountMetrics) WithBotAnalysis(b BotAnalysis) AccountMetrics {
	out := m.Clone()
	out.BotPercentage = b.BotPercentage
	out.BotFactors = append([]string(nil), b.Factors...)
	return out
}

// WithTrustScore returns a copy carrying the aggregate score.
func (m AccountMetrics) WithTrustScore(t TrustScore) AccountMetrics {
	out := m.Clone()
	out.TrustScore = t.Overall
	out.RiskScores = t.Breakdown
	return out
}
