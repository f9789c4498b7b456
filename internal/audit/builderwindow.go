package audit

import (
	"go/ast"
	"strings"
)

// builderEntryPoints are the generic query-builder escape hatches. Dropping
// to them is allowed for complex queries, but the scoped repository's filter
// injection does not cover them, so the tenant filter must be visible right
// next to the call.
var builderEntryPoints = map[string]bool{
	"Raw":   true,
	"Exec":  true,
	"Table": true,
}

// builderWindowLines is how many lines after the entry point the tenant
// filter must appear in. A fixed window trades precision for a fast pass
// without full type analysis.
const builderWindowLines = 10

// sanctionedBuilderDirs hold the scoping implementation itself, where the
// filter injection lives. Everything else gets the window check.
var sanctionedBuilderDirs = []string{
	"internal/repo/sql",
	"migrations/",
}

// BuilderWindow flags generic query-builder usage with no tenant-id
// reference within the following lines.
type BuilderWindow struct{}

func (BuilderWindow) Rule() string { return RuleBuilderWindow }

func (BuilderWindow) Check(tree *SourceTree) []Finding {
	var findings []Finding

	for _, file := range tree.Files {
		if !file.Imports("gorm.io/gorm") || isSanctioned(file.Path) {
			continue
		}

		ast.Inspect(file.File, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !builderEntryPoints[sel.Sel.Name] {
				return true
			}

			line := file.Position(call.Pos())
			if tenantFilterInWindow(file, line) {
				return true
			}

			findings = append(findings, Finding{
				Rule:    RuleBuilderWindow,
				File:    file.Path,
				Line:    line,
				Snippet: file.Line(line),
			})

			return true
		})
	}

	return findings
}

func isSanctioned(filePath string) bool {
	for _, dir := range sanctionedBuilderDirs {
		if strings.HasPrefix(filePath, dir) || strings.Contains(filePath, "/"+dir) {
			return true
		}
	}

	return false
}

func tenantFilterInWindow(file *SourceFile, fromLine int) bool {
	for line := fromLine; line <= fromLine+builderWindowLines; line++ {
		if strings.Contains(file.Line(line), "tenant_id") {
			return true
		}
	}

	return false
}
