package constant

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrNoGoFiles = errors.New("no go files found")
)

// LoadPackage registers all package-level constants declared in the Go package located in dir.
// Constants are registered as <importPath>#<Name>. Constants of a named type declared in
// the same package are also registered as <importPath>.<TypeName>#<Name>.
//
// Constant expressions are evaluated by the type checker, so iota, arithmetic and
// references between constants resolve the same way the compiler sees them.
// Type-check errors for unrelated declarations are logged and ignored.
func (r *Registry) LoadPackage(dir, importPath string) error {
	fset := token.NewFileSet()
	files, err := parsePackageDir(fset, dir)
	if err != nil {
		return err
	}

	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			slog.Debug("Type check issue while loading constants", "dir", dir, "error", err)
		},
	}
	// With an Error handler set the checker keeps going and always returns a package.
	pkg, _ := conf.Check(importPath, fset, files, nil)
	if pkg == nil {
		return fmt.Errorf("error type checking %s", dir)
	}

	scope := pkg.Scope()
	count := 0
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}

		c, ok := fromTypesConst(obj)
		if !ok {
			slog.Debug("Skipping constant with unknown value", "path", importPath, "name", name)
			continue
		}

		r.Set(importPath, name, c)
		count++

		if named, ok := obj.Type().(*types.Named); ok && named.Obj().Pkg() == pkg {
			r.Set(importPath+"."+named.Obj().Name(), name, c)
		}
	}

	slog.Debug("Loaded package constants", "dir", dir, "path", importPath, "count", count)
	return nil
}

func parsePackageDir(fset *token.FileSet, dir string) ([]*ast.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []*ast.File
	pkgName := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}

		if pkgName == "" {
			pkgName = f.Name.Name
		}
		if f.Name.Name != pkgName {
			slog.Debug("Skipping file of another package", "file", name, "package", f.Name.Name)
			continue
		}
		files = append(files, f)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGoFiles, dir)
	}

	return files, nil
}

func fromTypesConst(obj *types.Const) (Constant, bool) {
	val := obj.Val()
	switch val.Kind() {
	case constant.String:
		return NewString(constant.StringVal(val)), true
	case constant.Int:
		return NewValue(val.ExactString()), true
	case constant.Float:
		f, _ := constant.Float64Val(val)
		return NewValue(strconv.FormatFloat(f, 'g', -1, 64)), true
	case constant.Bool, constant.Complex:
		return NewValue(val.String()), true
	default:
		return Constant{}, false
	}
}
