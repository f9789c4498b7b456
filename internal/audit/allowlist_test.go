package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafferly/stafferly/internal/audit"
)

func TestParseAllowlist(t *testing.T) {
	t.Run("Should parse valid entries", func(t *testing.T) {
		list, err := audit.ParseAllowlist([]byte(`
allow:
  - path: internal/log/log.go
    rule: unsafe-fallback
    reason: logging must work outside a tenant scope
  - path: routes/*.go
    rule: skip-tenant-report
    reason: health endpoints carry no tenant data
    classification: tenant-agnostic
`))

		require.NoError(t, err)
		assert.Len(t, list.Entries, 2)
		assert.True(t, list.Allows("internal/log/log.go", audit.RuleUnsafeFallback))
	})

	t.Run("Should reject an entry without a reason", func(t *testing.T) {
		_, err := audit.ParseAllowlist([]byte(`
allow:
  - path: internal/log/log.go
    rule: unsafe-fallback
`))

		assert.ErrorIs(t, err, audit.ErrAllowlistReason)
	})

	t.Run("Should reject a skip-tenant entry without a valid classification", func(t *testing.T) {
		_, err := audit.ParseAllowlist([]byte(`
allow:
  - path: routes/health.go
    rule: skip-tenant-report
    reason: health probe
    classification: whatever
`))

		assert.ErrorIs(t, err, audit.ErrAllowlistClass)
	})
}

func TestAllowlistMatching(t *testing.T) {
	list := &audit.Allowlist{Entries: []audit.AllowlistEntry{
		{Path: "internal/jobs/tasks/*.go", Rule: audit.RuleAsyncBoundary, Reason: "scoped via RunWithTenant helper"},
		{Path: "exports/builder.go", Rule: audit.RuleBuilderWindow, Reason: "reviewed raw export"},
	}}

	assert.True(t, list.Allows("internal/jobs/tasks/webhook_delivery_handler.go", audit.RuleAsyncBoundary))
	assert.False(t, list.Allows("internal/jobs/tasks/webhook_delivery_handler.go", audit.RuleBuilderWindow))
	assert.True(t, list.Allows("exports/builder.go", audit.RuleBuilderWindow))
	assert.False(t, list.Allows("exports/other.go", audit.RuleBuilderWindow))
}
