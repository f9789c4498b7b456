package log

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stafferly/stafferly/internal/tenantctx"
)

// InjectRequest attaches request-scoped attributes to the logging context.
// The tenant attribute uses the soft accessor on purpose: logging must work
// on routes that never enter a tenant scope (health, metrics, auth bootstrap).
func InjectRequest(ctx context.Context, r *http.Request) context.Context {
	tenant, _ := tenantctx.TenantID(ctx)
	requestID, _ := tenantctx.RequestID(ctx)

	return slogctx.With(ctx,
		slog.String("requestId", requestID),
		slog.String("tenantId", tenant),
		slog.Group("requestData",
			slog.String("method", r.Method),
			slog.String("host", r.Host),
			slog.String("path", r.URL.Path),
		),
	)
}

// InjectTask attaches task attributes for queue handlers.
func InjectTask(ctx context.Context, task *asynq.Task) context.Context {
	tenant, _ := tenantctx.TenantID(ctx)

	return slogctx.With(ctx,
		slog.String("taskType", task.Type()),
		slog.String("tenantId", tenant),
	)
}

func ErrorAttr(err error) slog.Attr {
	return slog.Attr{
		Key:   slogctx.ErrKey,
		Value: slog.StringValue(err.Error()),
	}
}

func Debug(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelInfo, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...slog.Attr) {
	args = append(args, slogctx.Err(err))

	slogctx.LogAttrs(ctx, slog.LevelError, msg, args...)
}
