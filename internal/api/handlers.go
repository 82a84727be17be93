package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/ignite/conversion-monitor/internal/account"
	"github.com/ignite/conversion-monitor/internal/cache"
	"github.com/ignite/conversion-monitor/internal/engine"
	"github.com/ignite/conversion-monitor/internal/scoring"
	"github.com/ignite/conversion-monitor/internal/signals"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine     *engine.Engine
	scoreCache *cache.ScoreCache // nil when the cache is disabled
	validate   *validator.Validate
}

// NewHandlers creates a new Handlers instance
func NewHandlers(eng *engine.Engine, scoreCache *cache.ScoreCache) *Handlers {
	return &Handlers{
		engine:     eng,
		scoreCache: scoreCache,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// scoredResponse joins the engine output with the two presentation helpers
// the dashboard consumes.
type scoredResponse struct {
	Record            account.Enriched    `json:"record"`
	Result            account.ScoreResult `json:"result"`
	RecommendedAction string              `json:"recommended_action"`
	ActionExplanation string              `json:"action_explanation"`
}

func toScoredResponse(sa account.Scored) scoredResponse {
	return scoredResponse{
		Record:            sa.Record,
		Result:            sa.Result,
		RecommendedAction: scoring.RecommendedAction(sa),
		ActionExplanation: scoring.ActionExplanation(sa),
	}
}

// GetScores scores every account in the loaded dataset.
//
//	GET /api/scores
func (h *Handlers) GetScores(w http.ResponseWriter, r *http.Request) {
	results := h.engine.ScoreAll(r.Context())

	resp := make([]scoredResponse, len(results))
	for i, sa := range results {
		resp[i] = toScoredResponse(sa)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(resp),
		"results": resp,
	})
}

// GetScoreSummary returns per-stage account counts for the loaded dataset.
//
//	GET /api/scores/summary
func (h *Handlers) GetScoreSummary(w http.ResponseWriter, r *http.Request) {
	summary := engine.StageSummary(h.engine.ScoreAll(r.Context()))

	writeJSON(w, http.StatusOK, map[string]any{
		"total":  h.engine.Dataset().Len(),
		"stages": summary,
	})
}

// GetAccountScore scores one account by ID. Unknown IDs score the documented
// zero-signal default; the lookup never faults.
//
//	GET /api/accounts/{accountID}/score
func (h *Handlers) GetAccountScore(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	if h.scoreCache != nil {
		if sa, ok := h.scoreCache.Get(r.Context(), accountID); ok {
			writeJSON(w, http.StatusOK, toScoredResponse(sa))
			return
		}
	}

	sa := h.engine.ScoreAccount(accountID)

	if h.scoreCache != nil {
		if err := h.scoreCache.Set(r.Context(), sa); err != nil {
			log.Printf("[api] cache store for %s: %v", accountID, err)
		}
	}

	writeJSON(w, http.StatusOK, toScoredResponse(sa))
}

// GetAccountAction returns just the recommended action and its explanation.
//
//	GET /api/accounts/{accountID}/action
func (h *Handlers) GetAccountAction(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	sa := h.engine.ScoreAccount(accountID)

	writeJSON(w, http.StatusOK, map[string]any{
		"account_id":         accountID,
		"stage":              sa.Result.Stage,
		"recommended_action": scoring.RecommendedAction(sa),
		"action_explanation": scoring.ActionExplanation(sa),
	})
}

// scoreRequest carries caller-supplied records for ad hoc scoring.
type scoreRequest struct {
	Accounts []account.Record   `json:"accounts" validate:"required,min=1,max=1000,dive"`
	Usage    []account.UsageRow `json:"usage" validate:"omitempty,dive"`
}

// ScoreRecords scores records supplied in the request body instead of the
// loaded dataset. This is the ingestion boundary, so the payload is
// validated here; the scoring layer itself never validates.
//
//	POST /api/score
func (h *Handlers) ScoreRecords(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed: "+err.Error())
		return
	}

	resp := make([]scoredResponse, len(req.Accounts))
	for i, rec := range req.Accounts {
		resp[i] = toScoredResponse(engine.ScoreRecord(signals.Enrich(rec, req.Usage)))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(resp),
		"results": resp,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
