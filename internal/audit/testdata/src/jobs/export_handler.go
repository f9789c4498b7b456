package jobs

import (
	"context"

	"example.com/app/internal/model"
	"example.com/app/internal/repo"
	"example.com/app/internal/tenantctx"
)

type ExportHandler struct {
	repository repo.Repo
}

func (h *ExportHandler) ProcessTask(ctx context.Context, tenantID string) error {
	return tenantctx.RunWithTenant(ctx, tenantID, func(ctx context.Context) error {
		booking := &model.Booking{}

		_, err := h.repository.First(ctx, booking, *repo.NewQuery())

		return err
	})
}
