package synth

import (
	"math"
	"sort"

	"trustscope/internal/model"
	"trustscope/internal/seeded"
	"trustscope/internal/util"
)

type demoShape int

const (
	shapeOrganic demoShape = iota
	shapeBoosted
)

type demoProfile struct {
	account model.AccountMetrics
	shape   demoShape
	start   int
	spikes  int
}

var demoProfiles = map[string]demoProfile{
	"crypto_whale": {
		account: model.AccountMetrics{
			Name:           "Crypto Whale",
			Handle:         "@crypto_whale",
			Platform:       "twitter",
			Verified:       true,
			Bio:            "DeFi enthusiast | 10x returns | NFA | Follow for alpha",
			Followers:      892500,
			FollowerChange: 12.5,
			EngagementRate: 4.8,
			MonthlyGrowth:  8.2,
			BotPercentage:  8,
			TrustScore:     82,
			RiskScores:     model.RiskScores{Growth: 85, Engagement: 78, Followers: 88, Activity: 79},
			Engagement:     model.EngagementBreakdown{Likes: 65, Comments: 20, Shares: 10, Saves: 5},
		},
		shape:  shapeOrganic,
		start:  850000,
		spikes: 3,
	},
	"nft_artist": {
		account: model.AccountMetrics{
			Name:           "NFT Artist Pro",
			Handle:         "@nft_artist",
			Platform:       "tiktok",
			Verified:       true,
			Bio:            "Creating digital art that speaks | 50+ collections | OpenSea verified",
			Followers:      1250000,
			FollowerChange: 5.3,
			EngagementRate: 7.2,
			MonthlyGrowth:  4.1,
			BotPercentage:  5,
			TrustScore:     91,
			RiskScores:     model.RiskScores{Growth: 92, Engagement: 95, Followers: 89, Activity: 88},
			Engagement:     model.EngagementBreakdown{Likes: 55, Comments: 25, Shares: 15, Saves: 5},
		},
		shape:  shapeOrganic,
		start:  1200000,
		spikes: 1,
	},
	"fake_influencer": {
		account: model.AccountMetrics{
			Name:           "Make Money Fast",
			Handle:         "@fake_influencer",
			Platform:       "twitter",
			Bio:            "Get rich quick! DM for secrets | 1000% gains guaranteed | Link in bio",
			Followers:      524000,
			FollowerChange: -2.1,
			EngagementRate: 0.8,
			MonthlyGrowth:  45.0,
			BotPercentage:  68,
			TrustScore:     23,
			RiskScores:     model.RiskScores{Growth: 15, Engagement: 22, Followers: 28, Activity: 35},
			Engagement:     model.EngagementBreakdown{Likes: 85, Comments: 5, Shares: 8, Saves: 2},
		},
		shape:  shapeBoosted,
		start:  200000,
		spikes: 12,
	},
}

// DemoHandles lists the built-in demo accounts in stable order.
func DemoHandles() []string {
	out := make([]string, 0, len(demoProfiles))
	for h := range demoProfiles {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Demo returns the built-in demo record for handle, if there is one.
func Demo(handle string) (model.AccountMetrics, bool) {
	p, ok := demoProfiles[util.NormalizeHandle(handle)]
	if !ok {
		return model.AccountMetrics{}, false
	}
	m := p.account.Clone()
	rnd := seeded.Seed("demo:" + util.NormalizeHandle(handle))
	switch p.shape {
	case shapeBoosted:
		m.Growth.Organic = boostedGrowth(&rnd, p.start, m.Followers)
	default:
		m.Growth.Organic = organicGrowth(&rnd, p.start, m.Followers)
	}
	m.Growth.Suspicious = scatterSpikes(&rnd, p.spikes)
	m.Provenance = model.ProvenanceDemo
	return m, true
}

func organicGrowth(rnd *seeded.Source, start, end int) []int {
	out := make([]int, 0, model.GrowthWindow)
	daily := float64(end-start) / model.GrowthWindow
	cur := float64(start)
	for i := 0; i < model.GrowthWindow; i++ {
		cur += daily + (rnd.Float64()-0.5)*daily*0.5
		out = append(out, int(math.Round(cur)))
	}
	return out
}

// boostedGrowth crawls at 30% of the organic pace and jumps 10K–60K on
// roughly three days in ten, capped at end.
func boostedGrowth(rnd *seeded.Source, start, end int) []int {
	out := make([]int, 0, model.GrowthWindow)
	cur := float64(start)
	for i := 0; i < model.GrowthWindow; i++ {
		if rnd.Float64() > 0.7 {
			cur += rnd.Float64()*50000 + 10000
		} else {
			cur += float64(end-start) / model.GrowthWindow * 0.3
		}
		out = append(out, int(math.Round(math.Min(cur, float64(end)))))
	}
	return out
}

// scatterSpikes places count spikes on random days; collisions overwrite.
func scatterSpikes(rnd *seeded.Source, count int) []int {
	out := make([]int, model.GrowthWindow)
	for i := 0; i < count; i++ {
		idx := rnd.Intn(model.GrowthWindow, 0)
		out[idx] = rnd.Intn(30000, 5000)
	}
	return out
}
