package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should load from yaml file", func(t *testing.T) {
		dir := t.TempDir()
		content := `
database:
  host: db.internal
  name: stafferly
  user: app
http:
  address: ":9090"
`
		err := os.WriteFile(filepath.Join(dir, "stafferly.yaml"), []byte(content), 0o600)
		require.NoError(t, err)

		cfg, err := config.LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, ":9090", cfg.HTTP.Address)
		// Defaults fill what the file omits.
		assert.Equal(t, "5432", cfg.Database.Port)
		assert.Equal(t, "stafferly", cfg.Application.Name)
	})

	t.Run("Should apply env override", func(t *testing.T) {
		dir := t.TempDir()
		content := `
database:
  host: db.internal
  name: stafferly
`
		err := os.WriteFile(filepath.Join(dir, "stafferly.yaml"), []byte(content), 0o600)
		require.NoError(t, err)

		t.Setenv("STAFFERLY_DATABASE_HOST", "replica.internal")

		cfg, err := config.LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "replica.internal", cfg.Database.Host)
	})

	t.Run("Should fail validation without database config", func(t *testing.T) {
		_, err := config.LoadConfig(t.TempDir())
		assert.Error(t, err)
	})
}
