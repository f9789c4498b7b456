// Package jobs wires the asynq task queue to the tenant scoping contract:
// enqueuing a per-tenant task captures the active scope into the payload,
// and handlers re-enter it with tenantctx.RunWithTenant before touching any
// tenant-owned repository.
package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/log"
)

// TaskHandler defines the interface for handling queued tasks.
type TaskHandler interface {
	ProcessTask(ctx context.Context, task *asynq.Task) error
	TaskType() string
}

// Client enqueues tasks.
type Client struct {
	asynqClient *asynq.Client
}

func NewClient(cfg config.Queue) *Client {
	return &Client{
		asynqClient: asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}),
	}
}

// EnqueueTenant enqueues a task for the tenant of the active scope.
func (c *Client) EnqueueTenant(ctx context.Context, taskType string, data []byte) error {
	payload, err := NewTenantTaskPayload(ctx, data)
	if err != nil {
		return err
	}

	return c.enqueue(ctx, taskType, payload)
}

// EnqueueGlobal enqueues a tenant-agnostic task.
func (c *Client) EnqueueGlobal(ctx context.Context, taskType string, data []byte) error {
	return c.enqueue(ctx, taskType, NewGlobalTaskPayload(data))
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload TaskPayload) error {
	raw, err := payload.ToBytes()
	if err != nil {
		return err
	}

	_, err = c.asynqClient.EnqueueContext(ctx, asynq.NewTask(taskType, raw))
	if err != nil {
		return err
	}

	log.Info(ctx, "Enqueued task", slog.String("taskType", taskType))

	return nil
}

func (c *Client) Close() error {
	return c.asynqClient.Close()
}

// Worker runs registered task handlers.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(cfg config.Queue) *Worker {
	return &Worker{
		server: asynq.NewServer(
			asynq.RedisClientOpt{Addr: cfg.RedisAddr},
			asynq.Config{Concurrency: cfg.Concurrency},
		),
		mux: asynq.NewServeMux(),
	}
}

// RegisterTasks registers multiple task handlers.
func (w *Worker) RegisterTasks(ctx context.Context, handlers []TaskHandler) {
	for _, handler := range handlers {
		w.mux.Handle(handler.TaskType(), asynq.HandlerFunc(handler.ProcessTask))
		log.Info(ctx, "Registered task", slog.String("Name", handler.TaskType()))
	}
}

func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
