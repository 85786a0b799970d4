package main

import (
	"fmt"
	"io"
	"strings"

	"trustscope/internal/jobs"
	"trustscope/internal/model"
	"trustscope/internal/recommend"
	"trustscope/internal/theme"
)

func printReport(w io.Writer, res model.AnalysisResult) {
	a := res.Account
	labels := recommend.LabelsFor(res)

	fmt.Fprintf(w, "%s (%s) on %s\n", a.Name, a.Handle, a.Platform)
	if res.Estimated {
		fmt.Fprintf(w, "  data: %s (no live data available)\n", res.Provenance)
	}
	fmt.Fprintf(w, "  trust score   %3d  %s\n", res.Trust.Overall, theme.Colorize(res.Trust.Verdict.Class, res.Trust.Verdict.Text))
	fmt.Fprintf(w, "  overall risk       %s\n", theme.Colorize(labels.OverallRisk.Class, labels.OverallRisk.Text))
	fmt.Fprintf(w, "  followers     %d (following %d)\n", a.Followers, a.Following)
	fmt.Fprintf(w, "  engagement    %.2f%%  %s\n", a.EngagementRate, labels.Engagement.Text)
	fmt.Fprintf(w, "  bot audience  %.0f%%  %s\n", a.BotPercentage, theme.Colorize(labels.Bot.Class, labels.Bot.Text))
	b := res.Trust.Breakdown
	fmt.Fprintf(w, "  breakdown     growth=%d engagement=%d followers=%d activity=%d\n", b.Growth, b.Engagement, b.Followers, b.Activity)
	if len(res.Bot.Factors) > 0 {
		fmt.Fprintf(w, "  factors       %s\n", strings.Join(res.Bot.Factors, "; "))
	}
	fmt.Fprintf(w, "  %s\n\n", theme.Colorize(string(res.Recommendation.Tier), res.Recommendation.Text))
}

func printAudit(w io.Writer, rep jobs.AuditReport) {
	fmt.Fprintf(w, "Audit of %s on %s: %d checked, %d without data, %d flagged\n",
		rep.Handle, rep.Platform, rep.Checked, rep.Missing, len(rep.Flagged))
	for _, f := range rep.Flagged {
		fmt.Fprintf(w, "  %-20s %s  bot=%.0f%%  %s\n",
			f.Account.Handle,
			theme.Colorize(string(f.Analysis.Risk), string(f.Analysis.Risk)),
			f.Analysis.BotPercentage,
			strings.Join(f.Analysis.Factors, "; "))
	}
}
