package db

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db/dsn"
	"github.com/stafferly/stafferly/internal/errs"
)

var (
	ErrStartingDBCon = errors.New("error starting db connection")
	ErrDBResolver    = errors.New("error starting db resolver")
)

const (
	connectAttempts = 5
	connectDelay    = time.Second
)

// StartDBConnection opens a DB connection using data from `config.Database`.
// The connection is retried a few times so the service survives a database
// that is still coming up; replicas, when configured, serve reads through
// the resolver.
func StartDBConnection(
	ctx context.Context,
	conf config.Database,
	replicas []config.Database,
) (*gorm.DB, error) {
	dialector := postgres.Open(dsn.FromDBConfig(conf))

	var db *gorm.DB

	retrier := retry.New(
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.LastErrorOnly(true),
	)

	err := retrier.Do(func() error {
		var openErr error

		db, openErr = gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
		})

		return openErr
	})
	if err != nil {
		return nil, errs.Wrap(ErrStartingDBCon, err)
	}

	db = db.WithContext(ctx)

	if len(replicas) == 0 {
		return db, nil
	}

	replicaDialectors := make([]gorm.Dialector, 0, len(replicas))
	for _, r := range replicas {
		replicaDialectors = append(replicaDialectors, postgres.Open(dsn.FromDBConfig(r)))
	}

	err = db.Use(dbresolver.Register(dbresolver.Config{
		Sources:  []gorm.Dialector{dialector},
		Replicas: replicaDialectors,
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return nil, errs.Wrap(ErrDBResolver, err)
	}

	return db, nil
}
