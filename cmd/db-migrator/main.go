package main

import (
	"context"
	"flag"
	"os"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db"
	"github.com/stafferly/stafferly/utils/cmd"
)

const defaultGracefulShutdown = 1

var (
	gracefulShutdownSec     = flag.Int64("graceful-shutdown", defaultGracefulShutdown, "graceful shutdown seconds")
	gracefulShutdownMessage = flag.String(
		"graceful-shutdown-message",
		"Graceful shutdown in %d seconds",
		"graceful shutdown message",
	)
	version  = flag.Int64("version", 0, "run migration until targeted version")
	rollback = flag.Bool("r", false, "run down migrations (rollback)")
)

func run(ctx context.Context, cfg *config.Config) error {
	m, err := db.NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	req := db.Migration{
		Downgrade: *rollback,
	}

	if *version != 0 {
		return m.MigrateTo(ctx, req, *version)
	}

	return m.MigrateToLatest(ctx, req)
}

// main is the entry point for the application. It is intentionally kept small
// because it is hard to test, which would lower test coverage.
func main() {
	flag.Parse()

	exitCode := cmd.RunFuncWithSignalHandling(run, cmd.RunFlags{
		GracefulShutdownSec:     *gracefulShutdownSec,
		GracefulShutdownMessage: *gracefulShutdownMessage,
	})
	os.Exit(exitCode)
}
