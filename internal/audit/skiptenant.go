package audit

import (
	"go/ast"
)

// ClassUnclassified marks an exemption nobody has bucketed yet. The report
// is not a pass/fail gate, but every unclassified row is a review item.
const ClassUnclassified = "unclassified"

// routeRegistrations are the mux calls that expose an endpoint.
var routeRegistrations = map[string]bool{
	"Handle":     true,
	"HandleFunc": true,
}

// SkipTenantReport enumerates every route registered in a file that never
// wires the tenant-resolution middleware. Exemptions to tenant scoping are
// where future regressions hide, so each one must be visible and classified
// through the allowlist.
type SkipTenantReport struct{}

func (SkipTenantReport) Rule() string { return RuleSkipTenant }

func (SkipTenantReport) Entries(tree *SourceTree, allowlist *Allowlist) []SkipTenantEntry {
	var entries []SkipTenantEntry

	for _, file := range tree.Files {
		if referencesInjectTenant(file) {
			continue
		}

		ast.Inspect(file.File, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !routeRegistrations[sel.Sel.Name] {
				return true
			}

			line := file.Position(call.Pos())
			entry := SkipTenantEntry{
				File:           file.Path,
				Line:           line,
				Detail:         file.Line(line),
				Classification: ClassUnclassified,
			}

			if allowed, ok := allowlist.Classification(file.Path); ok {
				entry.Classification = allowed.Classification
				entry.Reason = allowed.Reason
			}

			entries = append(entries, entry)

			return true
		})
	}

	return entries
}

func referencesInjectTenant(file *SourceFile) bool {
	var found bool

	ast.Inspect(file.File, func(node ast.Node) bool {
		sel, ok := node.(*ast.SelectorExpr)
		if ok && sel.Sel.Name == "InjectTenant" {
			found = true
			return false
		}

		ident, ok := node.(*ast.Ident)
		if ok && ident.Name == "InjectTenant" {
			found = true
			return false
		}

		return true
	})

	return found
}
