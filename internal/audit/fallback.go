package audit

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// fallbackLiterals are the literals whose assignment to a tenant-named
// variable signals a defaulted tenant id. A defaulted id silently redirects
// a request to the wrong tenant's data, which makes this the highest
// severity pattern the auditors look for.
var fallbackLiterals = map[string]bool{
	"default": true,
	"system":  true,
	"":        true,
}

const fallbackSuggestion = "use tenantctx.RequireTenantID(ctx) and propagate its error instead of defaulting"

// UnsafeFallback flags code that substitutes a literal tenant id where the
// fail-closed accessor belongs:
//
//   - a string literal ("default", "system", "") assigned to a variable
//     whose name contains "tenant"
//   - a call to the soft accessor tenantctx.TenantID whose presence result
//     is discarded with the blank identifier
//
// This is the only rule with a mechanical rewrite, so findings carry a
// suggestion.
type UnsafeFallback struct{}

func (UnsafeFallback) Rule() string { return RuleUnsafeFallback }

func (UnsafeFallback) Check(tree *SourceTree) []Finding {
	var findings []Finding

	for _, file := range tree.Files {
		ast.Inspect(file.File, func(node ast.Node) bool {
			assign, ok := node.(*ast.AssignStmt)
			if !ok {
				return true
			}

			findings = append(findings, checkLiteralAssignment(file, assign)...)
			findings = append(findings, checkDiscardedPresence(file, assign)...)

			return true
		})
	}

	return findings
}

// checkLiteralAssignment matches `tenantID = "default"` and friends,
// including the var declaration form.
func checkLiteralAssignment(file *SourceFile, assign *ast.AssignStmt) []Finding {
	var findings []Finding

	for i, lhs := range assign.Lhs {
		ident, ok := lhs.(*ast.Ident)
		if !ok || !strings.Contains(strings.ToLower(ident.Name), "tenant") {
			continue
		}

		if i >= len(assign.Rhs) {
			continue
		}

		lit, ok := assign.Rhs[i].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			continue
		}

		value, err := strconv.Unquote(lit.Value)
		if err != nil || !fallbackLiterals[strings.ToLower(value)] {
			continue
		}

		line := file.Position(assign.Pos())
		findings = append(findings, Finding{
			Rule:       RuleUnsafeFallback,
			File:       file.Path,
			Line:       line,
			Snippet:    file.Line(line),
			Suggestion: fallbackSuggestion,
		})
	}

	return findings
}

// checkDiscardedPresence matches `tenantID, _ := tenantctx.TenantID(ctx)`:
// ignoring the presence result turns the soft accessor into a silent empty
// string fallback.
func checkDiscardedPresence(file *SourceFile, assign *ast.AssignStmt) []Finding {
	if len(assign.Lhs) != 2 || len(assign.Rhs) != 1 {
		return nil
	}

	blank, ok := assign.Lhs[1].(*ast.Ident)
	if !ok || blank.Name != "_" {
		return nil
	}

	call, ok := assign.Rhs[0].(*ast.CallExpr)
	if !ok {
		return nil
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "TenantID" {
		return nil
	}

	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != "tenantctx" {
		return nil
	}

	line := file.Position(assign.Pos())

	return []Finding{{
		Rule:       RuleUnsafeFallback,
		File:       file.Path,
		Line:       line,
		Snippet:    file.Line(line),
		Suggestion: fallbackSuggestion,
	}}
}
