package recommend

import "trustscope/internal/model"

const (
	safeText    = "This account shows strong signs of authenticity. Engagement appears organic, growth is consistent and bot activity is minimal. Recommended for brand partnerships and sponsored content."
	cautionText = "This account shows mixed signals. Some metrics look healthy but there are areas of concern. Ask for detailed analytics before committing, and start with smaller test campaigns to measure real conversion."
	dangerText  = "WARNING: This account shows significant red flags, including suspicious growth, low engagement quality and high bot activity. Advertising here carries substantial risk. Not recommended for brand partnerships."
)

// For picks the advisory for an account. Rules are checked in order and the
// first match wins.
func For(trustScore int, botPercentage, engagementRate float64) model.Recommendation {
	switch {
	case trustScore >= 80 && botPercentage <= 10 && engagementRate >= 3:
		return model.Recommendation{Tier: model.TierSafe, Text: safeText}
	case trustScore >= 50:
		return model.Recommendation{Tier: model.TierCaution, Text: cautionText}
	default:
		return model.Recommendation{Tier: model.TierDanger, Text: dangerText}
	}
}
