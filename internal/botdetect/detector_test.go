package botdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustscope/internal/model"
)

func flatSeries(v int) []int {
	s := make([]int, model.GrowthWindow)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestExpectedEngagementTiers(t *testing.T) {
	assert.Equal(t, 8.0, ExpectedEngagement(9999))
	assert.Equal(t, 5.0, ExpectedEngagement(10000))
	assert.Equal(t, 3.0, ExpectedEngagement(100000))
	assert.Equal(t, 1.5, ExpectedEngagement(1000000))

	prev := ExpectedEngagement(0)
	for _, f := range []int{1, 9999, 10000, 50000, 99999, 100000, 999999, 1000000, 50000000} {
		cur := ExpectedEngagement(f)
		assert.LessOrEqual(t, cur, prev, "followers=%d", f)
		prev = cur
	}
}

func TestVeryLowEngagementScenario(t *testing.T) {
	m := model.AccountMetrics{Handle: "@x", Followers: 500000, EngagementRate: 0.5}
	res := Analyze(m, nil)
	assert.Equal(t, []string{FactorVeryLowEngagement}, res.Factors)
	assert.Equal(t, 30.0, res.RawScore)
	assert.Equal(t, 30.0, res.BotPercentage)
	assert.Equal(t, model.RiskMedium, res.Risk)
}

func TestBelowAverageEngagement(t *testing.T) {
	// 1.5 is half of the 3% benchmark: below 60% but not below 30%.
	m := model.AccountMetrics{Handle: "@x", Followers: 500000, EngagementRate: 1.5}
	res := Analyze(m, nil)
	assert.Equal(t, []string{FactorLowEngagement}, res.Factors)
	assert.Equal(t, 15.0, res.RawScore)
	assert.Equal(t, model.RiskLow, res.Risk)
}

func TestFollowRatio(t *testing.T) {
	m := model.AccountMetrics{Handle: "@x", Followers: 100, Following: 400, EngagementRate: 9}
	res := Analyze(m, nil)
	assert.Equal(t, []string{FactorFollowRatio}, res.Factors)
	assert.Equal(t, 20.0, res.RawScore)

	m.Following = 0
	res = Analyze(m, nil)
	assert.Empty(t, res.Factors)
	assert.Equal(t, 5.0, res.BotPercentage)
	assert.Equal(t, 0.0, res.RawScore)
	assert.Equal(t, model.RiskLow, res.Risk)
}

func TestFiveGrowthSpikes(t *testing.T) {
	series := flatSeries(100000)
	cur := 100000
	for i := 1; i < len(series); i++ {
		if i%5 == 0 {
			cur += 1000
		}
		series[i] = cur
	}
	// 5 deltas of 1000 and 24 of 0: mean 172, threshold 862.
	require.Equal(t, 5, CountGrowthSpikes(series))

	m := model.AccountMetrics{Handle: "@x", Followers: 5000, EngagementRate: 9, Growth: model.GrowthData{Organic: series}}
	res := Analyze(m, nil)
	assert.Equal(t, []string{"5 suspicious growth spikes detected"}, res.Factors)
	assert.Equal(t, 25.0, res.RawScore)
	assert.Equal(t, model.RiskLow, res.Risk)
}

func TestThreeSpikesAreTolerated(t *testing.T) {
	series := flatSeries(0)
	cur := 0
	for i := 1; i < len(series); i++ {
		if i == 5 || i == 15 || i == 25 {
			cur += 1000
		}
		series[i] = cur
	}
	assert.Equal(t, 3, CountGrowthSpikes(series))
	res := Analyze(model.AccountMetrics{Handle: "@x", EngagementRate: 9, Growth: model.GrowthData{Organic: series}}, nil)
	assert.Empty(t, res.Factors)
}

func TestCountGrowthSpikesShortSeries(t *testing.T) {
	assert.Equal(t, 0, CountGrowthSpikes(nil))
	assert.Equal(t, 0, CountGrowthSpikes([]int{42}))
	assert.Equal(t, 0, CountGrowthSpikes(flatSeries(7)))
}

func TestEngagementVariation(t *testing.T) {
	steady := []model.ContentItem{{Likes: 10}, {Likes: 10}, {Likes: 10}}
	assert.Equal(t, 0.0, EngagementVariation(steady))
	assert.Equal(t, 0.0, EngagementVariation([]model.ContentItem{{}, {}}))
	assert.Equal(t, 0.0, EngagementVariation(nil))

	// values 0,0,0,400: mean 100, sd sqrt(30000)=173.2 → 173%
	spiky := []model.ContentItem{{}, {}, {}, {Likes: 300, Comments: 50, Shares: 50}}
	assert.InDelta(t, 173.2, EngagementVariation(spiky), 0.1)

	res := Analyze(model.AccountMetrics{Handle: "@x", Followers: 100, EngagementRate: 9}, spiky)
	assert.Equal(t, []string{FactorInconsistent}, res.Factors)
	assert.Equal(t, 15.0, res.RawScore)
}

func TestClampAndTierUseDifferentScores(t *testing.T) {
	series := flatSeries(0)
	cur := 0
	for i := 1; i < len(series); i++ {
		if i%5 == 0 {
			cur += 5000
		}
		series[i] = cur
	}
	m := model.AccountMetrics{
		Handle:         "@x",
		Followers:      500000,
		Following:      2000000,
		EngagementRate: 0.1,
		Growth:         model.GrowthData{Organic: series},
	}
	spiky := []model.ContentItem{{}, {}, {}, {Likes: 400}}
	res := Analyze(m, spiky)

	// 30 + 20 + 5*5 + 15
	require.Equal(t, 5, CountGrowthSpikes(series))
	assert.Equal(t, 90.0, res.RawScore)
	assert.Equal(t, 85.0, res.BotPercentage)
	assert.Equal(t, model.RiskHigh, res.Risk)
	assert.Equal(t, []string{
		FactorVeryLowEngagement,
		FactorFollowRatio,
		"5 suspicious growth spikes detected",
		FactorInconsistent,
	}, res.Factors)
}

func TestBotPercentageAlwaysInRange(t *testing.T) {
	for _, f := range []int{0, 10, 5000, 80000, 600000, 3000000} {
		for _, rate := range []float64{0, 0.2, 1, 3, 9} {
			for _, following := range []int{0, 1, f * 3} {
				res := Analyze(model.AccountMetrics{Handle: "@x", Followers: f, Following: following, EngagementRate: rate}, nil)
				assert.GreaterOrEqual(t, res.BotPercentage, 5.0)
				assert.LessOrEqual(t, res.BotPercentage, 85.0)
			}
		}
	}
}

func TestFlagFollowings(t *testing.T) {
	accounts := []model.AccountMetrics{
		{Handle: "@healthy", Followers: 5000, EngagementRate: 9},
		{Handle: "@lurker", Followers: 500000, EngagementRate: 0.5},
		{Handle: "@farm", Followers: 100, Following: 5000, EngagementRate: 0.1},
	}
	flagged := FlagFollowings(accounts, model.RiskMedium)
	require.Len(t, flagged, 2)
	assert.Equal(t, "@farm", flagged[0].Account.Handle)
	assert.Equal(t, model.RiskMedium, flagged[0].Analysis.Risk)
	assert.Equal(t, 50.0, flagged[0].Account.BotPercentage)
	assert.Equal(t, "@lurker", flagged[1].Account.Handle)

	assert.Len(t, FlagFollowings(accounts, model.RiskLow), 3)
	assert.Len(t, FlagFollowings(accounts, model.RiskHigh), 0)
}
