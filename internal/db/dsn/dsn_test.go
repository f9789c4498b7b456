package dsn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stafferly/stafferly/internal/config"
	"github.com/stafferly/stafferly/internal/db/dsn"
)

func TestFromDBConfig(t *testing.T) {
	got := dsn.FromDBConfig(config.Database{
		Host:     "localhost",
		Port:     "5432",
		Name:     "stafferly",
		User:     "app",
		Password: "secret",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=localhost user=app password=secret dbname=stafferly port=5432 sslmode=disable", got)
}
