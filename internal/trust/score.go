// Package trust folds engagement, growth, audience and activity signals into
// a single 0–100 trust score.
package trust

import (
	"math"

	"trustscope/internal/model"
	"trustscope/internal/util"
)

// Weights of the four sub-scores. They sum to 1.
const (
	WeightEngagement = 0.30
	WeightGrowth     = 0.25
	WeightFollowers  = 0.25
	WeightActivity   = 0.20
)

// defaultBotPercentage stands in when neither an analysis nor a stored
// percentage is available.
const defaultBotPercentage = 20

// Calculate scores m. bot may be nil, in which case the record's own bot
// percentage is used.
func Calculate(m model.AccountMetrics, bot *model.BotAnalysis) model.TrustScore {
	scores := model.RiskScores{
		Engagement: ScoreEngagement(m.EngagementRate),
		Growth:     ScoreGrowth(m.MonthlyGrowth, m.Growth.Suspicious),
		Followers:  scoreFollowers(m, bot),
		Activity:   ScoreActivity(m.ContentCount),
	}
	total := float64(scores.Engagement)*WeightEngagement +
		float64(scores.Growth)*WeightGrowth +
		float64(scores.Followers)*WeightFollowers +
		float64(scores.Activity)*WeightActivity

	overall := int(math.Round(util.Clamp(total, 0, 100)))
	return model.TrustScore{
		Overall:   overall,
		Breakdown: scores,
		Verdict:   VerdictFor(overall),
	}
}

// ScoreEngagement maps an engagement rate onto a step scale.
func ScoreEngagement(rate float64) int {
	switch {
	case rate >= 6:
		return 95
	case rate >= 4:
		return 85
	case rate >= 2:
		return 70
	case rate >= 1:
		return 50
	default:
		return 30
	}
}

// ScoreGrowth penalises fast monthly growth and every suspicious day.
func ScoreGrowth(monthlyGrowth float64, suspicious []int) int {
	score := 70
	if monthlyGrowth > 30 {
		score -= 20
	} else if monthlyGrowth > 15 {
		score -= 10
	}
	for _, v := range suspicious {
		if v > 0 {
			score -= 5
		}
	}
	return util.ClampInt(score, 0, 100)
}

// ScoreActivity rewards a deep content catalogue. An unknown count is
// neutral.
func ScoreActivity(contentCount *int) int {
	score := 70
	if contentCount != nil {
		switch n := *contentCount; {
		case n > 50:
			score += 15
		case n > 20:
			score += 10
		case n < 5:
			score -= 20
		}
	}
	return util.ClampInt(score, 0, 100)
}

func scoreFollowers(m model.AccountMetrics, bot *model.BotAnalysis) int {
	pct := float64(defaultBotPercentage)
	switch {
	case bot != nil:
		pct = bot.BotPercentage
	case m.BotPercentage > 0:
		pct = m.BotPercentage
	}
	return util.ClampInt(int(math.Round(100-pct)), 0, 100)
}
