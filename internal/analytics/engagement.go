package analytics

import (
	"math"

	"trustscope/internal/model"
	"trustscope/internal/util"
)

// Aggregate reduces content items to an engagement rate and mix.
// Rate is mean per-item (likes+comments+shares) over followers, in percent
// with two decimals. Breakdown percentages are rounded independently, so
// they may sum to 99 or 101.
func Aggregate(items []model.ContentItem, followers int) model.EngagementStats {
	if len(items) == 0 || followers <= 0 {
		return model.EngagementStats{}
	}
	var likes, comments, shares, views int
	for _, it := range items {
		likes += it.Likes
		comments += it.Comments
		shares += it.Shares
		views += it.Views
	}
	n := float64(len(items))
	total := likes + comments + shares

	out := model.EngagementStats{
		Rate:          util.Round(float64(total)/n/float64(followers)*100, 2),
		AverageViews:  int(math.Round(float64(views) / n)),
		TotalLikes:    likes,
		TotalComments: comments,
		TotalShares:   shares,
	}
	if total > 0 {
		pct := func(v int) int { return int(math.Round(float64(v) / float64(total) * 100)) }
		out.Breakdown = model.EngagementBreakdown{
			Likes:    pct(likes),
			Comments: pct(comments),
			Shares:   pct(shares),
		}
	}
	return out
}
