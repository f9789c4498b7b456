package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stafferly/stafferly/internal/middleware"
	"github.com/stafferly/stafferly/internal/repo"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

func TestWriteDomainError(t *testing.T) {
	t.Run("Should map not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		middleware.WriteDomainError(t.Context(), rec, repo.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Should hide isolation failures behind a generic 500", func(t *testing.T) {
		for _, err := range []error{
			tenantctx.ErrMissingTenantContext,
			repo.ErrCrossTenantIntegrity,
		} {
			rec := httptest.NewRecorder()
			middleware.WriteDomainError(t.Context(), rec, err)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "tenant")
		}
	})

	t.Run("Should default unknown errors to 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		middleware.WriteDomainError(t.Context(), rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
