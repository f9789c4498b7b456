package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/stafferly/stafferly/internal/config"
)

const postgresContainer = "testcontainers-postgresql-shared"

var testDB = config.Database{
	Name:     "stafferly_test",
	User:     "test",
	Password: "test",
	SSLMode:  "disable",
}

// StartPostgresSQL starts (or reuses) the shared postgres container and
// fills cfg with its connection data.
func StartPostgresSQL(
	tb testing.TB,
	cfg *config.Database,
	opts ...testcontainers.ContainerCustomizer,
) {
	tb.Helper()

	// Do it like this so the user specified override the defaults
	options := append([]testcontainers.ContainerCustomizer{
		postgres.WithDatabase(testDB.Name),
		postgres.WithUsername(testDB.User),
		postgres.WithPassword(testDB.Password),
		postgres.BasicWaitStrategies(),
		testcontainers.WithStartupCommand(testcontainers.NewRawCommand([]string{
			"postgres",
			"-c", "max_connections=1000",
		})),
		testcontainers.WithReuseByName(postgresContainer),
	}, opts...)

	service, err := postgres.Run(tb.Context(),
		"postgres:16-alpine",
		options...,
	)
	assert.NoError(tb, err)

	port, err := service.MappedPort(tb.Context(), "5432")
	assert.NoError(tb, err)

	host, err := service.Host(tb.Context())
	assert.NoError(tb, err)

	*cfg = testDB
	cfg.Host = host
	cfg.Port = port.Port()
}
