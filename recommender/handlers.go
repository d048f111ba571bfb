package recommender

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"charity-recommender/recommender/application"
	"charity-recommender/recommender/domain"
)

const (
	defaultPageSize = 3
	maxPageSize     = 12
)

// Handler expõe as rotas da API de recomendação.
type Handler struct {
	Recommend  application.RecommendService
	DailyPicks *application.DailyPicks
	Version    string
	Env        string
}

// Routes registra as rotas no mux. O middleware limit (rate limit) é
// aplicado só nas rotas de recomendação; /api/status fica fora dele.
func (h *Handler) Routes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	mux.Handle("GET /api/status", http.HandlerFunc(h.handleStatus))
	mux.Handle("GET /api/daily-picks", limit(http.HandlerFunc(h.handleDailyPicks)))
	mux.Handle("POST /api/recommend", limit(http.HandlerFunc(h.handleRecommend)))
}

type recommendRequest struct {
	Answers []domain.Answer `json:"answers"`
	Cursor  string          `json:"cursor,omitempty"`
	Limit   int             `json:"limit,omitempty"`
}

type recommendResponse struct {
	Charities []domain.Charity `json:"charities"`
	// Cursor null encerra a paginação.
	Cursor  *string        `json:"cursor"`
	Explain domain.Explain `json:"explain"`
}

type dailyPicksResponse struct {
	Charities []domain.Charity `json:"charities"`
}

type statusResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	Env     string `json:"env"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Version: h.Version, Env: h.Env})
}

func (h *Handler) handleDailyPicks(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxPageSize {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+formatInt(maxPageSize))
			return
		}
		limit = v
	}

	writeJSON(w, http.StatusOK, dailyPicksResponse{Charities: h.DailyPicks.Select(limit)})
}

func (h *Handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and "+formatInt(maxPageSize))
		return
	}

	q := domain.QueryFromAnswers(req.Answers)
	res, err := h.Recommend.Recommend(q, req.Cursor, limit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCursor), errors.Is(err, domain.ErrCursorMismatch):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp := recommendResponse{Charities: res.Charities, Explain: res.Explain}
	if resp.Charities == nil {
		resp.Charities = []domain.Charity{}
	}
	if res.NextCursor != "" {
		resp.Cursor = &res.NextCursor
	}
	writeJSON(w, http.StatusOK, resp)
}
