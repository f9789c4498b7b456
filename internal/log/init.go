package log

import (
	"log/slog"
	"os"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/stafferly/stafferly/internal/config"
)

// InitAsDefault installs a context-aware JSON logger as the process default.
// Attributes injected via InjectRequest and InjectTask flow into every
// record through the slogctx handler chain.
func InitAsDefault(app config.Application) {
	handler := slogctx.NewHandler(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(app.LogLevel)}),
		nil,
	)

	logger := slog.New(handler)
	if app.Name != "" {
		logger = logger.With(slog.String("application", app.Name))
	}

	slog.SetDefault(logger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
