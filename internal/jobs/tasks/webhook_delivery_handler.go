// Package tasks holds the asynq task handlers. Handlers receive no request
// pipeline, so each one re-enters the tenant scope recorded in its payload
// with tenantctx.RunWithTenant before calling into the repository.
package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/stafferly/stafferly/internal/errs"
	"github.com/stafferly/stafferly/internal/jobs"
	"github.com/stafferly/stafferly/internal/log"
	"github.com/stafferly/stafferly/internal/model"
	"github.com/stafferly/stafferly/internal/repo"
	"github.com/stafferly/stafferly/internal/tenantctx"
)

const (
	TypeWebhookDelivery = "webhook:deliver"

	deliveryAttempts = 3
	deliveryTimeout  = 10 * time.Second
)

var ErrWebhookDisabled = errors.New("webhook is disabled")

// WebhookDeliveryData identifies the delivery row to process.
type WebhookDeliveryData struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
}

// WebhookDeliveryHandler posts a pending delivery to its webhook endpoint
// and records the outcome.
type WebhookDeliveryHandler struct {
	repository repo.Repo
	httpClient *http.Client
}

func NewWebhookDeliveryHandler(repository repo.Repo) *WebhookDeliveryHandler {
	return &WebhookDeliveryHandler{
		repository: repository,
		httpClient: &http.Client{Timeout: deliveryTimeout},
	}
}

func (h *WebhookDeliveryHandler) TaskType() string {
	return TypeWebhookDelivery
}

func (h *WebhookDeliveryHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := jobs.ParseTaskPayload(task.Payload())
	if err != nil {
		return err
	}

	var data WebhookDeliveryData

	err = json.Unmarshal(payload.Data, &data)
	if err != nil {
		return errs.Wrap(jobs.ErrParsingPayload, err)
	}

	return tenantctx.RunWithTenant(ctx, payload.TenantID, func(ctx context.Context) error {
		return h.deliver(log.InjectTask(ctx, task), data.DeliveryID)
	})
}

func (h *WebhookDeliveryHandler) deliver(ctx context.Context, deliveryID uuid.UUID) error {
	delivery := &model.WebhookDelivery{ID: deliveryID}

	found, err := h.repository.First(ctx, delivery, *repo.NewQuery().
		Where(repo.NewCompositeKeyGroup(repo.NewCompositeKey().
			Where(repo.IDField, deliveryID))))
	if err != nil {
		return err
	}

	if !found {
		// Either never existed or belongs to another tenant; nothing to do.
		log.Warn(ctx, "Webhook delivery not found",
			slog.String("deliveryID", deliveryID.String()))

		return nil
	}

	if delivery.Status == model.DeliveryDelivered {
		return nil
	}

	webhook := &model.Webhook{}

	found, err = h.repository.First(ctx, webhook, *repo.NewQuery().
		Where(repo.NewCompositeKeyGroup(repo.NewCompositeKey().
			Where(repo.IDField, delivery.WebhookID))))
	if err != nil {
		return err
	}

	if !found || !webhook.Enabled {
		return h.markFailed(ctx, delivery, ErrWebhookDisabled)
	}

	err = h.post(ctx, webhook, delivery)
	if err != nil {
		log.Error(ctx, "Webhook delivery failed", err,
			slog.String("deliveryID", delivery.ID.String()),
			slog.String("webhookID", webhook.ID.String()),
		)

		return h.markFailed(ctx, delivery, err)
	}

	now := time.Now().UTC()
	delivery.Status = model.DeliveryDelivered
	delivery.DeliveredAt = &now
	delivery.Attempts++

	return h.updateDelivery(ctx, delivery)
}

func (h *WebhookDeliveryHandler) post(ctx context.Context, webhook *model.Webhook, delivery *model.WebhookDelivery) error {
	retrier := retry.New(
		retry.Attempts(deliveryAttempts),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)

	return retrier.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL,
			bytes.NewBufferString(delivery.Payload))
		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := h.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			//nolint:err113
			return fmt.Errorf("endpoint responded with status %d", resp.StatusCode)
		}

		return nil
	})
}

func (h *WebhookDeliveryHandler) markFailed(ctx context.Context, delivery *model.WebhookDelivery, cause error) error {
	delivery.Status = model.DeliveryFailed
	delivery.Attempts++

	err := h.updateDelivery(ctx, delivery)
	if err != nil {
		return errs.Wrap(err, cause)
	}

	return nil
}

func (h *WebhookDeliveryHandler) updateDelivery(ctx context.Context, delivery *model.WebhookDelivery) error {
	_, err := h.repository.Patch(ctx, delivery, *repo.NewQuery().
		Where(repo.NewCompositeKeyGroup(repo.NewCompositeKey().
			Where(repo.IDField, delivery.ID))).
		UpdateOnly(repo.StatusField, repo.AttemptsField, repo.DeliveredAtField))

	return err
}
