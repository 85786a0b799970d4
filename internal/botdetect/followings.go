package botdetect

import (
	"sort"

	"trustscope/internal/model"
)

// FlaggedAccount is a following that crossed the requested risk tier.
type FlaggedAccount struct {
	Account  model.AccountMetrics `json:"account"`
	Analysis model.BotAnalysis    `json:"analysis"`
}

var riskRank = map[model.Risk]int{
	model.RiskLow:    0,
	model.RiskMedium: 1,
	model.RiskHigh:   2,
}

// FlagFollowings runs the detector over each following and keeps those at
// or above minRisk, most bot-like first. Ties keep input order.
func FlagFollowings(accounts []model.AccountMetrics, minRisk model.Risk) []FlaggedAccount {
	threshold := riskRank[minRisk]
	out := make([]FlaggedAccount, 0)
	for _, a := range accounts {
		res := Analyze(a, nil)
		if riskRank[res.Risk] < threshold {
			continue
		}
		out = append(out, FlaggedAccount{Account: a.WithBotAnalysis(res), Analysis: res})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Analysis.RawScore > out[j].Analysis.RawScore
	})
	return out
}
