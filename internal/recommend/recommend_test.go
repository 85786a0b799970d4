package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trustscope/internal/model"
)

func TestForTiers(t *testing.T) {
	assert.Equal(t, model.TierSafe, For(80, 10, 3).Tier)
	assert.Equal(t, model.TierCaution, For(79, 5, 9).Tier)
	assert.Equal(t, model.TierCaution, For(95, 11, 9).Tier)
	assert.Equal(t, model.TierCaution, For(95, 5, 2.99).Tier)
	assert.Equal(t, model.TierCaution, For(50, 80, 0).Tier)
	assert.Equal(t, model.TierDanger, For(49, 5, 9).Tier)
	assert.Equal(t, model.TierDanger, For(0, 85, 0).Tier)
}

func TestForPartitionsInputSpace(t *testing.T) {
	valid := map[model.Tier]bool{model.TierSafe: true, model.TierCaution: true, model.TierDanger: true}
	for score := 0; score <= 100; score++ {
		for bot := 0.0; bot <= 100; bot += 2.5 {
			for rate := 0.0; rate <= 10; rate += 0.5 {
				r := For(score, bot, rate)
				assert.True(t, valid[r.Tier])
				assert.NotEmpty(t, r.Text)
				switch {
				case score >= 80 && bot <= 10 && rate >= 3:
					assert.Equal(t, model.TierSafe, r.Tier)
				case score >= 50:
					assert.Equal(t, model.TierCaution, r.Tier)
				default:
					assert.Equal(t, model.TierDanger, r.Tier)
				}
			}
		}
	}
}

func TestForTextIsFixedPerTier(t *testing.T) {
	assert.Equal(t, For(90, 1, 8).Text, For(81, 9, 3.5).Text)
	assert.NotEqual(t, For(90, 1, 8).Text, For(60, 1, 8).Text)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Low Risk", BotWarning(10).Text)
	assert.Equal(t, "Medium Risk", BotWarning(30).Text)
	assert.Equal(t, "High Risk", BotWarning(30.5).Text)

	assert.Equal(t, "Excellent", EngagementBadge(6).Text)
	assert.Equal(t, "Good", EngagementBadge(3).Text)
	assert.Equal(t, "Average", EngagementBadge(1).Text)
	assert.Equal(t, "Poor", EngagementBadge(0.9).Text)

	assert.Equal(t, "low", OverallRisk(70).Class)
	assert.Equal(t, "medium", OverallRisk(40).Class)
	assert.Equal(t, "high", OverallRisk(39).Class)

	l := LabelsFor(model.AnalysisResult{
		Account: model.AccountMetrics{BotPercentage: 50, EngagementRate: 7},
		Trust:   model.TrustScore{Overall: 75},
	})
	assert.Equal(t, Labels{
		Bot:         Label{Text: "High Risk", Class: "high"},
		Engagement:  Label{Text: "Excellent", Class: "high"},
		OverallRisk: Label{Text: "Low Risk", Class: "low"},
	}, l)
}
