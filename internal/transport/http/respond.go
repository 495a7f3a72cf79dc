package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"team-quiz-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError maps domain sentinels to client errors; anything else is a
// storage failure surfaced as a 500 with the message passed through.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTeamNameRequired),
		errors.Is(err, domain.ErrQuestionTextRequired),
		errors.Is(err, domain.ErrInvalidCorrectAnswer),
		errors.Is(err, domain.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// withLogging wraps a handler with request logging.
func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
