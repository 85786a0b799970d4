package jobs

import (
	"context"

	"trustscope/internal/botdetect"
	"trustscope/internal/model"
	"trustscope/internal/pipeline"
	"trustscope/internal/util"
)

// FollowingsLister returns the handles an account follows.
type FollowingsLister interface {
	Followings(ctx context.Context, handle, platform string) ([]string, error)
}

// AuditReport lists the followings of one account that look automated.
type AuditReport struct {
	Handle   string                     `json:"handle"`
	Platform string                     `json:"platform"`
	Checked  int                        `json:"checked"`
	Missing  int                        `json:"missing"`
	Flagged  []botdetect.FlaggedAccount `json:"flagged"`
}

// AuditHandles runs the bot detector over every handle the analyzer's source
// can supply and keeps those at or above minRisk.
func AuditHandles(ctx context.Context, a *pipeline.Analyzer, handles []string, platform string, minRisk model.Risk) (AuditReport, error) {
	accounts, err := a.Followings(ctx, handles, platform)
	if err != nil {
		return AuditReport{}, err
	}
	return AuditReport{
		Platform: platform,
		Checked:  len(accounts),
		Missing:  len(handles) - len(accounts),
		Flagged:  botdetect.FlagFollowings(accounts, minRisk),
	}, nil
}

// AuditAccount audits the stored followings of handle.
func AuditAccount(ctx context.Context, a *pipeline.Analyzer, l FollowingsLister, handle, platform string, minRisk model.Risk) (AuditReport, error) {
	handles, err := l.Followings(ctx, handle, platform)
	if err != nil {
		return AuditReport{}, err
	}
	rep, err := AuditHandles(ctx, a, handles, platform, minRisk)
	rep.Handle = "@" + util.NormalizeHandle(handle)
	return rep, err
}
