package audit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/stafferly/stafferly/internal/errs"
)

// SourceFile is a parsed Go file plus its raw lines. The AST drives the
// exact checks; the raw lines serve the line-window heuristics and the
// snippets in findings.
type SourceFile struct {
	// Path is relative to the scanned root, with forward slashes.
	Path string

	File  *ast.File
	Fset  *token.FileSet
	Lines []string
}

// Line returns the trimmed source line at the 1-based position, or "".
func (s *SourceFile) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}

	return strings.TrimSpace(s.Lines[n-1])
}

// Position resolves an AST node position to a 1-based line number.
func (s *SourceFile) Position(pos token.Pos) int {
	return s.Fset.Position(pos).Line
}

// Imports reports whether the file imports a path with the given suffix.
func (s *SourceFile) Imports(suffix string) bool {
	for _, imp := range s.File.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		if path == suffix || strings.HasSuffix(path, suffix) {
			return true
		}
	}

	return false
}

// SourceTree is the set of parsed files the auditors run over.
type SourceTree struct {
	Root  string
	Files []*SourceFile
}

var skippedDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
	".git":         true,
}

// LoadTree parses every non-test Go file under root. Directories starting
// with "_" or "." are skipped, as the Go toolchain does.
func LoadTree(root string) (*SourceTree, error) {
	tree := &SourceTree{Root: root}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := entry.Name()
		if entry.IsDir() {
			if path != root && (skippedDirs[name] || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}

		file, err := loadFile(root, path)
		if err != nil {
			return err
		}

		tree.Files = append(tree.Files, file)

		return nil
	})
	if err != nil {
		return nil, errs.Wrap(ErrLoadSource, err)
	}

	return tree, nil
}

func loadFile(root, path string) (*SourceFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	parsed, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return &SourceFile{
		Path:  filepath.ToSlash(rel),
		File:  parsed,
		Fset:  fset,
		Lines: strings.Split(string(src), "\n"),
	}, nil
}
