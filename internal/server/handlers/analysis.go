// Package handlers holds the HTTP handlers for the analysis API.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trustscope/internal/jobs"
	"trustscope/internal/model"
	"trustscope/internal/pipeline"
	"trustscope/internal/recommend"
)

const maxBatchHandles = 100

// AnalysisHandler serves analyses, batches and following audits.
type AnalysisHandler struct {
	analyzer   *pipeline.Analyzer
	followings jobs.FollowingsLister
	platform   string
	workers    int
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(a *pipeline.Analyzer, followings jobs.FollowingsLister, platform string, workers int) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a, followings: followings, platform: platform, workers: workers}
}

// AnalysisResponse is an analysis plus its display labels.
type AnalysisResponse struct {
	model.AnalysisResult
	Labels recommend.Labels `json:"labels"`
}

func newResponse(res model.AnalysisResult) AnalysisResponse {
	return AnalysisResponse{AnalysisResult: res, Labels: recommend.LabelsFor(res)}
}

func (h *AnalysisHandler) platformOr(p string) string {
	if p != "" {
		return p
	}
	return h.platform
}

// GetAnalysis analyses the handle in the path.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	platform := h.platformOr(r.URL.Query().Get("platform"))

	res, err := h.analyzer.Analyze(r.Context(), handle, platform)
	if err != nil {
		respondWithError(w, statusFor(err), "Failed to analyze account", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newResponse(res))
}

// AnalyzeRequest carries a caller-supplied record. Without an account the
// handle is resolved the same way as GET.
type AnalyzeRequest struct {
	Handle   string                `json:"handle"`
	Platform string                `json:"platform"`
	Account  *model.AccountMetrics `json:"account"`
	Items    []model.ContentItem   `json:"items"`
}

// PostAnalysis scores the record in the request body.
func (h *AnalysisHandler) PostAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Handle == "" && req.Account != nil {
		req.Handle = req.Account.Handle
	}
	platform := h.platformOr(req.Platform)

	var (
		res model.AnalysisResult
		err error
	)
	if req.Account == nil {
		res, err = h.analyzer.Analyze(r.Context(), req.Handle, platform)
	} else {
		res, err = h.analyzer.AnalyzeRecord(req.Handle, platform, req.Account, req.Items)
	}
	if err != nil {
		respondWithError(w, statusFor(err), "Failed to analyze account", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newResponse(res))
}

// BatchRequest names the handles to analyse.
type BatchRequest struct {
	Handles  []string `json:"handles"`
	Platform string   `json:"platform"`
}

// PostBatch analyses several handles at once.
func (h *AnalysisHandler) PostBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Handles) == 0 || len(req.Handles) > maxBatchHandles {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("handles must hold 1 to %d entries", maxBatchHandles), nil)
		return
	}
	items, err := jobs.AnalyzeBatch(r.Context(), h.analyzer, req.Handles, h.platformOr(req.Platform), h.workers)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Batch failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"results": items})
}
