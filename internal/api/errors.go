package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/taehan09/studio/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// validationError maps a repository validation failure onto a 422 with one
// error detail per failed field.
func validationError(verr *repository.ValidationError) error {
	details := make([]error, len(verr.Fields))
	for i, f := range verr.Fields {
		details[i] = &huma.ErrorDetail{
			Message:  f.Message,
			Location: "body." + f.Field,
		}
	}
	return huma.Error422UnprocessableEntity("validation failed", details...)
}
