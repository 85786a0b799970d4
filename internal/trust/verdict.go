package trust

import "trustscope/internal/model"

// VerdictFor labels a trust score.
func VerdictFor(score int) model.Verdict {
	switch {
	case score >= 85:
		return model.Verdict{Text: "Excellent", Class: "excellent"}
	case score >= 70:
		return model.Verdict{Text: "Good", Class: "good"}
	case score >= 50:
		return model.Verdict{Text: "Moderate", Class: "moderate"}
	case score >= 30:
		return model.Verdict{Text: "Risky", Class: "risky"}
	default:
		return model.Verdict{Text: "Dangerous", Class: "dangerous"}
	}
}
