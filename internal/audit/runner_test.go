package audit_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/audit"
)

func TestRunner(t *testing.T) {
	tree := loadFixtures(t)

	t.Run("Should gate on violations with exit code 1", func(t *testing.T) {
		runner := audit.NewRunner(audit.DefaultAuditors(), nil)

		report, err := runner.Run(t.Context(), tree)

		require.NoError(t, err)
		assert.False(t, report.Clean())
		assert.Equal(t, 1, report.ExitCode())
		assert.NotEmpty(t, report.SkipTenant)
	})

	t.Run("Should suppress allowlisted findings and fail again once removed", func(t *testing.T) {
		allowlist := &audit.Allowlist{Entries: []audit.AllowlistEntry{{
			Path:   "exports/builder.go",
			Rule:   audit.RuleBuilderWindow,
			Reason: "reviewed: export queries are cross-tenant by contract",
		}}}

		runner := audit.NewRunner([]audit.Auditor{audit.BuilderWindow{}}, allowlist)

		report, err := runner.Run(t.Context(), tree)
		require.NoError(t, err)

		assert.True(t, report.Clean())
		assert.Equal(t, 0, report.ExitCode())
		assert.Len(t, report.Suppressed, 2)

		bare := audit.NewRunner([]audit.Auditor{audit.BuilderWindow{}}, nil)

		report, err = bare.Run(t.Context(), tree)
		require.NoError(t, err)

		assert.False(t, report.Clean())
		assert.Len(t, report.Findings, 2)
	})

	t.Run("Should write a machine-readable report", func(t *testing.T) {
		runner := audit.NewRunner(audit.DefaultAuditors(), nil)

		report, err := runner.Run(t.Context(), tree)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "isolation-report.json")
		require.NoError(t, report.Write(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded audit.Report
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, len(report.Findings), len(decoded.Findings))

		for _, finding := range decoded.Findings {
			assert.NotEmpty(t, finding.Rule)
			assert.NotEmpty(t, finding.File)
			assert.Positive(t, finding.Line)
		}
	})

	t.Run("Should order findings deterministically", func(t *testing.T) {
		runner := audit.NewRunner(audit.DefaultAuditors(), nil)

		report, err := runner.Run(t.Context(), tree)
		require.NoError(t, err)

		for i := 1; i < len(report.Findings); i++ {
			prev, curr := report.Findings[i-1], report.Findings[i]
			if prev.File == curr.File {
				assert.LessOrEqual(t, prev.Line, curr.Line)
			} else {
				assert.Less(t, prev.File, curr.File)
			}
		}
	})
}
