// Package audit implements the static isolation auditors: source-scanning
// checks that detect code patterns able to defeat tenant scoping even though
// they compile and pass unit tests. Each auditor is an independent pass over
// the parsed source tree; CI fails when any auditor reports a violation that
// is not covered by the curated allowlist.
package audit

import (
	"errors"
	"fmt"
)

const (
	RuleUnsafeFallback = "unsafe-fallback"
	RuleAsyncBoundary  = "async-boundary"
	RuleLayering       = "layering"
	RuleInterpolation  = "raw-query-interpolation"
	RulePlatformBody   = "platform-body"
	RuleSkipTenant     = "skip-tenant-report"
	RuleBuilderWindow  = "builder-window"
)

var (
	ErrLoadSource    = errors.New("failed to load source tree")
	ErrLoadAllowlist = errors.New("failed to load allowlist")
	ErrWriteReport   = errors.New("failed to write report")
)

// Finding is a single violation: where it is, which rule matched, and the
// offending source line. Suggestion is set only for the one safe rewrite
// (unsafe fallback to the fail-closed accessor); every other pattern needs a
// human decision about correct scoping.
type Finding struct {
	Rule       string `json:"rule"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Snippet    string `json:"snippet"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: [%s] %s", f.File, f.Line, f.Rule, f.Snippet)
}

// Classification buckets for routes and handlers that legitimately run
// outside a tenant scope. Every exemption must land in exactly one bucket;
// exemptions are where future regressions hide.
const (
	ClassTenantAgnostic  = "tenant-agnostic"
	ClassUnauthenticated = "tenant-specific-unauthenticated"
	ClassAuthBootstrap   = "auth-bootstrap"
)

// SkipTenantEntry is one line of the skip-tenant visibility report.
type SkipTenantEntry struct {
	File           string `json:"file"`
	Line           int    `json:"line"`
	Detail         string `json:"detail"`
	Classification string `json:"classification"`
	Reason         string `json:"reason,omitempty"`
}

// Auditor is one static check over the loaded source tree.
type Auditor interface {
	Rule() string
	Check(tree *SourceTree) []Finding
}
