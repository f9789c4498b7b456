package audit

import (
	"regexp"
	"strings"
)

// controllerDirPattern identifies the HTTP-facing layer.
var controllerDirPattern = regexp.MustCompile(`(^|/)(handlers|controllers|api|middleware)(/|$)`)

// ormImports are the low-level data-access primitives controllers must not
// touch. The tenant filter lives in the scoped repository; a controller
// holding a raw *gorm.DB or a driver connection bypasses it entirely.
var ormImports = []string{
	"gorm.io/gorm",
	"gorm.io/driver/postgres",
	"database/sql",
	"github.com/jackc/pgx/v5",
	"/internal/repo/sql",
	"/internal/db",
}

// Layering enforces that the scoped repository is the only data path out of
// the controller layer.
type Layering struct{}

func (Layering) Rule() string { return RuleLayering }

func (Layering) Check(tree *SourceTree) []Finding {
	var findings []Finding

	for _, file := range tree.Files {
		dir := file.Path
		if idx := strings.LastIndex(dir, "/"); idx >= 0 {
			dir = dir[:idx]
		}

		if !controllerDirPattern.MatchString(dir) {
			continue
		}

		for _, imp := range file.File.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !isORMImport(importPath) {
				continue
			}

			line := file.Position(imp.Pos())
			findings = append(findings, Finding{
				Rule:    RuleLayering,
				File:    file.Path,
				Line:    line,
				Snippet: file.Line(line),
			})
		}
	}

	return findings
}

func isORMImport(importPath string) bool {
	for _, orm := range ormImports {
		if importPath == orm || strings.HasSuffix(importPath, orm) ||
			strings.HasPrefix(importPath, orm+"/") {
			return true
		}
	}

	return false
}
