package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stafferly/stafferly/internal/log"
	"github.com/stafferly/stafferly/internal/repo"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

type errorMessage struct {
	Error string `json:"error"`
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(errorMessage{Error: msg})
	if err != nil {
		log.Error(ctx, "failed writing error response", err)
	}
}

// WriteDomainError maps an error to a response. Isolation failures are
// deliberately opaque: which tenant was involved, and why the operation was
// structurally invalid, never reaches the client.
func WriteDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, "not found")
	case errors.Is(err, tenantctx.ErrMissingTenantContext),
		errors.Is(err, repo.ErrCrossTenantIntegrity):
		log.Error(ctx, "tenant isolation failure", err)
		writeError(ctx, w, http.StatusInternalServerError, "internal server error")
	default:
		writeError(ctx, w, http.StatusInternalServerError, "internal server error")
	}
}
