package recommend

import "trustscope/internal/model"

// Label is a short display tag with a style class.
type Label struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// BotWarning labels a bot percentage.
func BotWarning(pct float64) Label {
	switch {
	case pct <= 10:
		return Label{Text: "Low Risk", Class: string(model.RiskLow)}
	case pct <= 30:
		return Label{Text: "Medium Risk", Class: string(model.RiskMedium)}
	default:
		return Label{Text: "High Risk", Class: string(model.RiskHigh)}
	}
}

// EngagementBadge labels an engagement rate.
func EngagementBadge(rate float64) Label {
	switch {
	case rate >= 6:
		return Label{Text: "Excellent", Class: "high"}
	case rate >= 3:
		return Label{Text: "Good"}
	case rate >= 1:
		return Label{Text: "Average"}
	default:
		return Label{Text: "Poor", Class: "low"}
	}
}

// OverallRisk labels a trust score from the advertiser's point of view.
func OverallRisk(trustScore int) Label {
	switch {
	case trustScore >= 70:
		return Label{Text: "Low Risk", Class: string(model.RiskLow)}
	case trustScore >= 40:
		return Label{Text: "Medium Risk", Class: string(model.RiskMedium)}
	default:
		return Label{Text: "High Risk", Class: string(model.RiskHigh)}
	}
}

// Labels bundles the display tags for one analysis.
type Labels struct {
	Bot         Label `json:"bot"`
	Engagement  Label `json:"engagement"`
	OverallRisk Label `json:"overallRisk"`
}

// LabelsFor derives every display tag from a finished result.
func LabelsFor(r model.AnalysisResult) Labels {
	return Labels{
		Bot:         BotWarning(r.Account.BotPercentage),
		Engagement:  EngagementBadge(r.Account.EngagementRate),
		OverallRisk: OverallRisk(r.Trust.Overall),
	}
}
