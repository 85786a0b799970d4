// Package synth builds stand-in account records when no live data is
// available. All entropy comes from the handle, so the same handle always
// produces the same record.
package synth

import (
	"fmt"
	"math"

	"trustscope/internal/model"
	"trustscope/internal/seeded"
	"trustscope/internal/util"
)

const estimatedBio = "Creator | Content enthusiast"

// Generate returns an estimated record for handle. The order of draws from
// the stream is part of the output contract; appending new draws is fine,
// reordering is not.
func Generate(handle, platform string) (model.AccountMetrics, error) {
	handle = util.NormalizeHandle(handle)
	if handle == "" {
		return model.AccountMetrics{}, fmt.Errorf("%w: empty handle", model.ErrInvalidInput)
	}
	rnd := seeded.Seed(handle)

	followers := rnd.Intn(900000, 10000)
	engagementRate := util.Fixed(rnd.Float64()*8+0.5, 1)
	botPct := rnd.Intn(40, 5)
	trust := util.Clamp(70-float64(botPct)*0.8+engagementRate*5, 0, 100)

	m := model.AccountMetrics{
		Name:           DisplayName(handle),
		Handle:         "@" + handle,
		Platform:       platform,
		Verified:       rnd.Float64() > 0.7,
		Bio:            estimatedBio,
		Followers:      followers,
		FollowerChange: util.Fixed(rnd.Float64()*20-5, 1),
		EngagementRate: engagementRate,
		MonthlyGrowth:  util.Fixed(rnd.Float64()*15, 1),
		BotPercentage:  float64(botPct),
		TrustScore:     int(math.Round(trust)),
		Provenance:     model.ProvenanceEstimated,
	}
	m.RiskScores = model.RiskScores{
		Growth:     jitterScore(&rnd, trust),
		Engagement: jitterScore(&rnd, trust),
		Followers:  jitterScore(&rnd, trust),
		Activity:   jitterScore(&rnd, trust),
	}
	m.Growth = growthSeries(&rnd, followers)
	m.Engagement = normalizeMix(
		rnd.Intn(30, 50),
		rnd.Intn(20, 10),
		rnd.Intn(15, 5),
		rnd.Intn(10, 5),
	)
	return m, nil
}

// DisplayName title-cases each '_', '.' or '-' delimited segment of handle.
func DisplayName(handle string) string {
	return util.TitleSegments(util.NormalizeHandle(handle))
}

func jitterScore(rnd *seeded.Source, base float64) int {
	v := int(math.Round(base + rnd.Float64()*20 - 10))
	return util.ClampInt(v, 0, 100)
}

// growthSeries interpolates from 85–95% of the current count with noise of
// up to a quarter of the daily delta either way. Each day also rolls a 10%
// chance of a suspicious spike.
func growthSeries(rnd *seeded.Source, followers int) model.GrowthData {
	start := float64(followers) * (0.85 + rnd.Float64()*0.1)
	daily := (float64(followers) - start) / model.GrowthWindow

	g := model.GrowthData{
		Organic:    make([]int, 0, model.GrowthWindow),
		Suspicious: make([]int, 0, model.GrowthWindow),
	}
	for day := 0; day < model.GrowthWindow; day++ {
		variation := (rnd.Float64() - 0.5) * daily * 0.5
		g.Organic = append(g.Organic, int(math.Round(start+daily*float64(day)+variation)))

		spike := 0
		if rnd.Float64() > 0.9 {
			spike = rnd.Intn(20000, 5000)
		}
		g.Suspicious = append(g.Suspicious, spike)
	}
	return g
}

// normalizeMix converts raw engagement weights into rounded percentages.
func normalizeMix(likes, comments, shares, saves int) model.EngagementBreakdown {
	total := float64(likes + comments + shares + saves)
	if total == 0 {
		return model.EngagementBreakdown{}
	}
	pct := func(v int) int { return int(math.Round(float64(v) / total * 100)) }
	return model.EngagementBreakdown{
		Likes:    pct(likes),
		Comments: pct(comments),
		Shares:   pct(shares),
		Saves:    pct(saves),
	}
}
