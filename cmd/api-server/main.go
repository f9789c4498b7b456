package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db"
	"github.com/stafferly/stafferly/internal/log"
	"github.com/stafferly/stafferly/internal/middleware"
	"github.com/stafferly/stafferly/utils/cmd"
)

var (
	gracefulShutdownSec     = flag.Int64("graceful-shutdown", 1, "graceful shutdown seconds")
	gracefulShutdownMessage = flag.String("graceful-shutdown-message", "Graceful shutdown in %d seconds",
		"graceful shutdown message")
)

const readHeaderTimeout = 5 * time.Second

// run starts the API server. Business routes hang off the tenant-scoped
// chain; health and metrics stay outside it because they carry no tenant
// data (both are enumerated in the skip-tenant report allowlist).
func run(ctx context.Context, cfg *config.Config) error {
	dbCon, err := db.StartDBConnection(ctx, cfg.Database, cfg.DatabaseReplicas)
	if err != nil {
		return oops.In("main").Wrapf(err, "connecting to database")
	}

	sqlDB, err := dbCon.DB()
	if err != nil {
		return oops.In("main").Wrapf(err, "resolving database handle")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		err := sqlDB.PingContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	tenantChain := middleware.PanicRecovery()(
		middleware.InjectTenant()(
			middleware.Logging()(
				http.NotFoundHandler(),
			),
		),
	)
	mux.Handle("/api/", tenantChain)

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "Starting API server")

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return oops.In("main").Wrapf(err, "running api server")
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
