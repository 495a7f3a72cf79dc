package http

import (
	"net/http"

	"team-quiz-service/internal/app"
	"team-quiz-service/internal/domain"
)

// Handler exposes the quiz portal REST surface. None of the endpoints are
// authenticated: the admin password gate lives entirely in the presentation
// layer, so question management and reset are open at this boundary.
type Handler struct {
	access  *app.AccessService
	admin   *app.AdminService
	results *app.ResultService
	watch   *WatchHandler
}

func NewHandler(access *app.AccessService, admin *app.AdminService, results *app.ResultService) *Handler {
	return &Handler{
		access:  access,
		admin:   admin,
		results: results,
		watch:   NewWatchHandler(results),
	}
}

// Routes wires all endpoints onto a ServeMux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /v1/questions", withLogging(h.listQuestions))
	mux.HandleFunc("POST /v1/questions", withLogging(h.createQuestion))
	mux.HandleFunc("PUT /v1/questions/{id}", withLogging(h.updateQuestion))
	mux.HandleFunc("DELETE /v1/questions/{id}", withLogging(h.deleteQuestion))

	mux.HandleFunc("GET /v1/teams", withLogging(h.listTeams))
	mux.HandleFunc("POST /v1/teams", withLogging(h.recordResult))
	mux.HandleFunc("GET /v1/teams/watch", h.watch.ServeWatch)

	mux.HandleFunc("GET /v1/access", withLogging(h.listCodes))
	mux.HandleFunc("POST /v1/access", withLogging(h.issueCode))
	mux.HandleFunc("PUT /v1/access/{code}", withLogging(h.redeemCode))

	mux.HandleFunc("GET /v1/config/duration", withLogging(h.getDuration))
	mux.HandleFunc("PUT /v1/config/duration", withLogging(h.putDuration))

	mux.HandleFunc("DELETE /v1/data/reset", withLogging(h.reset))

	return mux
}

type questionRequest struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.admin.ListQuestions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	q, err := h.admin.CreateQuestion(r.Context(), req.Text, req.Options, req.CorrectAnswer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	q, err := h.admin.UpdateQuestion(r.Context(), r.PathValue("id"), req.Text, req.Options, req.CorrectAnswer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteQuestion(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []domain.TeamResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

type resultRequest struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

func (h *Handler) recordResult(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Name == "" {
		writeError(w, domain.ErrTeamNameRequired)
		return
	}
	result, err := h.results.Record(r.Context(), req.Name, req.Code, req.Score, req.TotalQuestions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.access.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if codes == nil {
		codes = []domain.AccessCode{}
	}
	writeJSON(w, http.StatusOK, codes)
}

type issueRequest struct {
	TeamName string `json:"teamName"`
	ForceNew bool   `json:"forceNew"`
}

func (h *Handler) issueCode(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	issued, err := h.access.Issue(r.Context(), req.TeamName, req.ForceNew)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issued)
}

// redeemCode marks a code used. A missing code is not an error here: the
// response body is JSON null, matching the no-op redemption contract.
func (h *Handler) redeemCode(w http.ResponseWriter, r *http.Request) {
	updated, err := h.access.Redeem(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type durationPayload struct {
	Duration int `json:"duration"`
}

func (h *Handler) getDuration(w http.ResponseWriter, r *http.Request) {
	seconds, err := h.admin.Duration(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, durationPayload{Duration: seconds})
}

func (h *Handler) putDuration(w http.ResponseWriter, r *http.Request) {
	var req durationPayload
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.admin.SetDuration(r.Context(), req.Duration); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, durationPayload{Duration: req.Duration})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
