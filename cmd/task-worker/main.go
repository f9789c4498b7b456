package main

import (
	"context"
	"flag"
	"os"

	"github.com/samber/oops"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db"
	"github.com/stafferly/stafferly/internal/jobs"
	"github.com/stafferly/stafferly/internal/jobs/tasks"
	"github.com/stafferly/stafferly/internal/repo/sql"
	"github.com/stafferly/stafferly/utils/cmd"
)

var (
	gracefulShutdownSec     = flag.Int64("graceful-shutdown", 1, "graceful shutdown seconds")
	gracefulShutdownMessage = flag.String("graceful-shutdown-message", "Graceful shutdown in %d seconds",
		"graceful shutdown message")
)

func run(ctx context.Context, cfg *config.Config) error {
	err := cfg.Queue.Validate()
	if err != nil {
		return oops.In("main").Wrapf(err, "validating queue configuration")
	}

	dbCon, err := db.StartDBConnection(ctx, cfg.Database, cfg.DatabaseReplicas)
	if err != nil {
		return oops.In("main").Wrapf(err, "connecting to database")
	}

	repository := sql.NewRepository(dbCon)

	worker := jobs.NewWorker(cfg.Queue)
	worker.RegisterTasks(ctx, []jobs.TaskHandler{
		tasks.NewWebhookDeliveryHandler(repository),
	})

	go func() {
		<-ctx.Done()
		worker.Shutdown()
	}()

	err = worker.Run()
	if err != nil {
		return oops.In("main").Wrapf(err, "running task worker")
	}

	return nil
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
