package audit

import (
	"go/ast"
	"reflect"
	"regexp"
	"strings"
)

// platformDirPattern identifies the tenant-administration tier. Platform
// endpoints operate across tenants by design, which is exactly why they may
// never take the tenant id from the request body: a client-supplied value
// there lets the caller impersonate an arbitrary tenant. The id must come
// from the trusted, server-resolved route context instead.
var platformDirPattern = regexp.MustCompile(`(^|/)platform(/|$)`)

// PlatformBody flags request DTOs in platform packages that bind a tenant id
// from the body, either through a json tag or a tenant-named exported field.
type PlatformBody struct{}

func (PlatformBody) Rule() string { return RulePlatformBody }

func (PlatformBody) Check(tree *SourceTree) []Finding {
	var findings []Finding

	for _, file := range tree.Files {
		if !platformDirPattern.MatchString(file.Path) {
			continue
		}

		ast.Inspect(file.File, func(node ast.Node) bool {
			structType, ok := node.(*ast.StructType)
			if !ok {
				return true
			}

			for _, field := range structType.Fields.List {
				if !bindsTenantFromBody(field) {
					continue
				}

				line := file.Position(field.Pos())
				findings = append(findings, Finding{
					Rule:    RulePlatformBody,
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

func bindsTenantFromBody(field *ast.Field) bool {
	if field.Tag != nil {
		tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))

		jsonTag, _, _ := strings.Cut(tag.Get("json"), ",")
		if isTenantName(jsonTag) {
			return true
		}

		if jsonTag == "-" {
			return false
		}
	}

	for _, name := range field.Names {
		if name.IsExported() && isTenantName(name.Name) {
			return true
		}
	}

	return false
}

func isTenantName(name string) bool {
	normalized := strings.ReplaceAll(strings.ToLower(name), "_", "")

	return normalized == "tenantid" || normalized == "tenant"
}
