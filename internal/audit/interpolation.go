package audit

import (
	"go/ast"
	"go/token"
	"regexp"
	"strconv"
)

// queryBuilderMethods are the builder calls whose string arguments become
// SQL. Interpolated fragments inside them are where a tenant filter is most
// likely hand-rolled incorrectly or omitted, and a SQL-injection vector.
var queryBuilderMethods = map[string]bool{
	"Where":  true,
	"Select": true,
	"Raw":    true,
	"Exec":   true,
	"Order":  true,
	"Having": true,
	"Joins":  true,
}

// safeAliasFormat accepts Sprintf formats whose only verbs qualify a column
// with an alias or table name ("%s.tenant_id = ?"). Values still travel as
// placeholders, so the substitution cannot splice data into the SQL.
var safeAliasFormat = regexp.MustCompile(`^(%s\.[A-Za-z_][\w]*(\s*(=|!=|<|>|IN)\s*\?)?(\s+(AND|OR)\s+)?)+$`)

// Interpolation flags string interpolation inside query-builder calls,
// excluding the safe alias-substitution patterns.
type Interpolation struct{}

func (Interpolation) Rule() string { return RuleInterpolation }

func (Interpolation) Check(tree *SourceTree) []Finding {
	var findings []Finding

	for _, file := range tree.Files {
		ast.Inspect(file.File, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !queryBuilderMethods[sel.Sel.Name] {
				return true
			}

			for _, arg := range call.Args {
				if !isInterpolated(arg) {
					continue
				}

				line := file.Position(arg.Pos())
				findings = append(findings, Finding{
					Rule:    RuleInterpolation,
					File:    file.Path,
					Line:    line,
					Snippet: file.Line(line),
				})
			}

			return true
		})
	}

	return findings
}

func isInterpolated(arg ast.Expr) bool {
	switch expr := arg.(type) {
	case *ast.CallExpr:
		return isUnsafeSprintf(expr)
	case *ast.BinaryExpr:
		return expr.Op == token.ADD && !isSafeConcat(expr)
	default:
		return false
	}
}

func isUnsafeSprintf(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Sprintf" {
		return false
	}

	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != "fmt" || len(call.Args) == 0 {
		return false
	}

	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return true
	}

	format, err := strconv.Unquote(lit.Value)
	if err != nil {
		return true
	}

	return !safeAliasFormat.MatchString(format)
}

// isSafeConcat accepts the table-qualification idiom
// resource.TableName()+".tenant_id = ?": the only dynamic operand allowed in
// a concatenated fragment is a TableName() call.
func isSafeConcat(expr *ast.BinaryExpr) bool {
	return isSafeConcatOperand(expr.X) && isSafeConcatOperand(expr.Y)
}

func isSafeConcatOperand(operand ast.Expr) bool {
	switch op := operand.(type) {
	case *ast.BasicLit:
		return op.Kind == token.STRING
	case *ast.CallExpr:
		sel, ok := op.Fun.(*ast.SelectorExpr)
		return ok && sel.Sel.Name == "TableName" && len(op.Args) == 0
	case *ast.BinaryExpr:
		return op.Op == token.ADD && isSafeConcat(op)
	default:
		return false
	}
}
