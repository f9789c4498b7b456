package audit

import (
	"go/ast"
	"path"
	"regexp"
)

// asyncFilePattern identifies files that hold async entry points: queue
// handlers, cron jobs, workers. Naming-based detection is a heuristic; it
// errs toward matching, since a false positive costs one allowlist entry
// while a false negative costs a crashed (or worse, mis-scoped) job. Files
// holding async entry points must carry one of these keywords in their name
// to stay under this check.
var asyncFilePattern = regexp.MustCompile(`(?i)(handler|processor|worker|consumer|task|job|cron)`)

// MatchesAsyncEntryPoint reports whether a file name falls under the
// async-boundary check.
func MatchesAsyncEntryPoint(filePath string) bool {
	return asyncFilePattern.MatchString(path.Base(filePath))
}

// repoImportSuffixes mark a file as touching tenant-owned data.
var repoImportSuffixes = []string{
	"/internal/repo",
	"/internal/repo/sql",
	"/internal/model",
}

// AsyncBoundary flags async entry-point files that reach a tenant-aware
// repository without establishing a tenant scope in the same file. Nothing
// populates the carrier outside the request pipeline, so a handler that
// skips tenantctx.RunWithTenant either fails closed on every task or, if
// someone patches the failure with a fallback, reads the wrong tenant.
type AsyncBoundary struct{}

func (AsyncBoundary) Rule() string { return RuleAsyncBoundary }

func (AsyncBoundary) Check(tree *SourceTree) []Finding {
	var findings []Finding

	for _, file := range tree.Files {
		if !MatchesAsyncEntryPoint(file.Path) {
			continue
		}

		if !referencesTenantData(file) {
			continue
		}

		if callsRunWithTenant(file) {
			continue
		}

		findings = append(findings, Finding{
			Rule:    RuleAsyncBoundary,
			File:    file.Path,
			Line:    file.Position(file.File.Package),
			Snippet: "async entry point references tenant-owned data without tenantctx.RunWithTenant in this file",
		})
	}

	return findings
}

func referencesTenantData(file *SourceFile) bool {
	for _, suffix := range repoImportSuffixes {
		if file.Imports(suffix) {
			return true
		}
	}

	return false
}

func callsRunWithTenant(file *SourceFile) bool {
	var found bool

	ast.Inspect(file.File, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if ok && sel.Sel.Name == "RunWithTenant" {
			found = true
			return false
		}

		return true
	})

	return found
}
