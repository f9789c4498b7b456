package jobs

import (
	"context"

	"example.com/app/internal/model"
	"example.com/app/internal/repo"
)

type ReportHandler struct {
	repository repo.Repo
}

func (h *ReportHandler) ProcessTask(ctx context.Context) error {
	booking := &model.Booking{}

	_, err := h.repository.First(ctx, booking, *repo.NewQuery())

	return err
}
