// Package botdetect estimates how much of an account's audience is
// automated. Each factor adds points independently; the sum is clamped into
// a percentage while the risk tier is read from the unclamped sum.
package botdetect

import (
	"fmt"
	"math"

	"trustscope/internal/model"
	"trustscope/internal/util"
)

const (
	minBotPercentage = 5
	maxBotPercentage = 85

	spikeMultiplier = 5
	minSpikes       = 3
	maxVariation    = 100
)

const (
	FactorVeryLowEngagement = "Very low engagement for follower count"
	FactorLowEngagement     = "Below average engagement"
	FactorFollowRatio       = "Suspicious follower/following ratio"
	FactorInconsistent      = "Inconsistent video engagement"
)

// Analyze scores m and, when present, its content items.
func Analyze(m model.AccountMetrics, items []model.ContentItem) model.BotAnalysis {
	score := 0.0
	factors := []string{}

	expected := ExpectedEngagement(m.Followers)
	switch {
	case m.EngagementRate < expected*0.3:
		score += 30
		factors = append(factors, FactorVeryLowEngagement)
	case m.EngagementRate < expected*0.6:
		score += 15
		factors = append(factors, FactorLowEngagement)
	}

	if m.Following > 0 && float64(m.Followers)/float64(m.Following) < 0.5 {
		score += 20
		factors = append(factors, FactorFollowRatio)
	}

	if spikes := CountGrowthSpikes(m.Growth.Organic); spikes > minSpikes {
		score += float64(spikes * 5)
		factors = append(factors, fmt.Sprintf("%d suspicious growth spikes detected", spikes))
	}

	if len(items) > 0 && EngagementVariation(items) > maxVariation {
		score += 15
		factors = append(factors, FactorInconsistent)
	}

	return model.BotAnalysis{
		BotPercentage: util.Clamp(score, minBotPercentage, maxBotPercentage),
		RawScore:      score,
		Factors:       factors,
		Risk:          riskFor(score),
	}
}

// ExpectedEngagement is the benchmark engagement rate, in percent, for an
// audience of the given size. Larger audiences engage less.
func ExpectedEngagement(followers int) float64 {
	switch {
	case followers < 10000:
		return 8
	case followers < 100000:
		return 5
	case followers < 1000000:
		return 3
	default:
		return 1.5
	}
}

// CountGrowthSpikes counts days whose delta exceeds five times the mean
// day-over-day delta. Series shorter than two points have no deltas.
func CountGrowthSpikes(series []int) int {
	if len(series) < 2 {
		return 0
	}
	sum := 0
	for i := 1; i < len(series); i++ {
		sum += series[i] - series[i-1]
	}
	mean := float64(sum) / float64(len(series)-1)

	spikes := 0
	for i := 1; i < len(series); i++ {
		if float64(series[i]-series[i-1]) > mean*spikeMultiplier {
			spikes++
		}
	}
	return spikes
}

// EngagementVariation is the coefficient of variation of per-item
// engagement, in percent (population standard deviation over mean).
func EngagementVariation(items []model.ContentItem) float64 {
	if len(items) == 0 {
		return 0
	}
	n := float64(len(items))
	mean := 0.0
	for _, it := range items {
		mean += float64(it.Total())
	}
	mean /= n
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, it := range items {
		d := float64(it.Total()) - mean
		variance += d * d
	}
	variance /= n
	return math.Sqrt(variance) / mean * 100
}

func riskFor(raw float64) model.Risk {
	switch {
	case raw > 50:
		return model.RiskHigh
	case raw > 25:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
