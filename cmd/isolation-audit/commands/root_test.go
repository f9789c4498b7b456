package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/cmd/isolation-audit/commands"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := commands.NewRootCmd()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestAuditCommand(t *testing.T) {
	fixtures := filepath.Join("..", "..", "..", "internal", "audit", "testdata", "src")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	t.Run("Should exit dirty on the violation fixtures", func(t *testing.T) {
		out, err := runCmd(t,
			"all",
			"--root", fixtures,
			"--allowlist", filepath.Join(t.TempDir(), "missing.yaml"),
			"--report", reportPath,
		)

		require.ErrorIs(t, err, commands.ErrViolationsFound)
		assert.Contains(t, out, "unsafe-fallback")
		assert.Contains(t, out, "suggestion:")

		_, statErr := os.Stat(reportPath)
		assert.NoError(t, statErr)
	})

	t.Run("Should exit clean on a tree without violations", func(t *testing.T) {
		clean := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(clean, "doc.go"), []byte("package clean\n"), 0o644))

		_, err := runCmd(t,
			"all",
			"--root", clean,
			"--allowlist", filepath.Join(clean, "missing.yaml"),
			"--report", filepath.Join(clean, "report.json"),
		)

		require.NoError(t, err)
	})

	t.Run("Should run a single auditor", func(t *testing.T) {
		out, err := runCmd(t,
			"unsafe-fallback",
			"--root", fixtures,
			"--allowlist", filepath.Join(t.TempDir(), "missing.yaml"),
			"--report", filepath.Join(t.TempDir(), "report.json"),
		)

		require.ErrorIs(t, err, commands.ErrViolationsFound)
		assert.Contains(t, out, "billing/fallback.go")
		assert.NotContains(t, out, "builder-window")
	})
}
