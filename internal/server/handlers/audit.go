package handlers

import (
	"fmt"
	"net/http"

	"trustscope/internal/botdetect"
	"trustscope/internal/jobs"
	"trustscope/internal/model"
)

// AuditRequest selects the accounts to check. Accounts are scored as
// given; Handles are looked up; with neither, the stored followings of
// Handle are used.
type AuditRequest struct {
	Handle   string                 `json:"handle"`
	Platform string                 `json:"platform"`
	Handles  []string               `json:"handles"`
	Accounts []model.AccountMetrics `json:"accounts"`
	MinRisk  model.Risk             `json:"minRisk"`
}

// PostAudit flags the bot-like accounts among an account's followings.
func (h *AnalysisHandler) PostAudit(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	minRisk := req.MinRisk
	switch minRisk {
	case "":
		minRisk = model.RiskMedium
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
	default:
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown risk level %q", minRisk), nil)
		return
	}
	platform := h.platformOr(req.Platform)

	switch {
	case len(req.Accounts) > 0:
		for _, a := range req.Accounts {
			if err := a.Validate(); err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid account", err)
				return
			}
		}
		respondWithJSON(w, http.StatusOK, jobs.AuditReport{
			Handle:   req.Handle,
			Platform: platform,
			Checked:  len(req.Accounts),
			Flagged:  botdetect.FlagFollowings(req.Accounts, minRisk),
		})
	case len(req.Handles) > 0:
		rep, err := jobs.AuditHandles(r.Context(), h.analyzer, req.Handles, platform, minRisk)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Audit failed", err)
			return
		}
		rep.Handle = req.Handle
		respondWithJSON(w, http.StatusOK, rep)
	case req.Handle != "" && h.followings != nil:
		rep, err := jobs.AuditAccount(r.Context(), h.analyzer, h.followings, req.Handle, platform, minRisk)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Audit failed", err)
			return
		}
		respondWithJSON(w, http.StatusOK, rep)
	default:
		respondWithError(w, http.StatusBadRequest, "Nothing to audit", nil)
	}
}
