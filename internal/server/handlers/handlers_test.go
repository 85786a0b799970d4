package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustscope/internal/model"
	"trustscope/internal/pipeline"
)

func newHandler() *AnalysisHandler {
	return NewAnalysisHandler(pipeline.NewAnalyzer(), nil, "tiktok", 2)
}

func call(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(model.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("wrapped: %w", model.ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("database is locked")))
}

func TestBadRequests(t *testing.T) {
	h := newHandler()
	tooMany := `{"handles": [` + strings.TrimSuffix(strings.Repeat(`"a",`, maxBatchHandles+1), ",") + `]}`

	cases := []struct {
		name    string
		handler http.HandlerFunc
		body    string
		message string
	}{
		{"analyze unknown field", h.PostAnalysis, `{"handle": "a", "bogus": 1}`, "Invalid request body"},
		{"analyze broken json", h.PostAnalysis, `{"handle": `, "Invalid request body"},
		{"analyze empty handle", h.PostAnalysis, `{"handle": ""}`, "Failed to analyze account"},
		{"analyze negative followers", h.PostAnalysis, `{"handle": "a", "account": {"followers": -1}}`, "Failed to analyze account"},
		{"batch empty", h.PostBatch, `{"handles": []}`, "handles must hold 1 to 100 entries"},
		{"batch too many", h.PostBatch, tooMany, "handles must hold 1 to 100 entries"},
		{"audit unknown risk", h.PostAudit, `{"minRisk": "extreme", "handles": ["a"]}`, `unknown risk level "extreme"`},
		{"audit invalid account", h.PostAudit, `{"accounts": [{"handle": "@x", "followers": -5}]}`, "Invalid account"},
		{"audit nothing", h.PostAudit, `{}`, "Nothing to audit"},
		{"audit handle without store", h.PostAudit, `{"handle": "me"}`, "Nothing to audit"},
		{"audit unknown field", h.PostAudit, `{"owner": "me"}`, "Invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(tc.handler, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.message, errorBody(t, rec)["error"])
		})
	}
}

func TestPostAuditDefaultsToMedium(t *testing.T) {
	rec := call(newHandler().PostAudit, `{"accounts": [
		{"handle": "@farm", "followers": 100, "following": 5000},
		{"handle": "@lurker", "followers": 100, "following": 10, "engagementRate": 3}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var rep struct {
		Checked int `json:"checked"`
		Flagged []struct {
			Analysis model.BotAnalysis `json:"analysis"`
		} `json:"flagged"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 2, rep.Checked)
	require.Len(t, rep.Flagged, 1)
	assert.Equal(t, model.RiskMedium, rep.Flagged[0].Analysis.Risk)
}
