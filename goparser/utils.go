// Package goparser locates call sites of cola.Generate/cola.MustGenerate
// across a Go module, for `cola sites` to report where generated
// configuration packages are wired into the build.
package goparser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/packages"
)

// CallSite is one located call to cola.Generate or cola.MustGenerate.
type CallSite struct {
	Package  string
	Position token.Position
	Func     string // the enclosing function name, or "" at package scope
	Must     bool   // true for MustGenerate
}

func GetPackages(dir string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.LoadAllSyntax,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, err
	}
	return pkgs, nil
}

var ErrUnhandledCallType = errors.New("unhandled call type")

// IsGenerateFunc reports whether call invokes cola.Generate or
// cola.MustGenerate, by selector or dot-imported identifier.
func IsGenerateFunc(call *ast.CallExpr) (isGenerate bool, isMust bool, err error) {
	var funcName string
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		funcName = fun.Name
	case *ast.SelectorExpr:
		if exprToString(fun.X) != "cola" {
			return false, false, nil
		}
		funcName = fun.Sel.Name
	default:
		return false, false, ErrUnhandledCallType
	}
	if funcName != "Generate" && funcName != "MustGenerate" {
		return false, false, nil
	}
	return true, funcName == "MustGenerate", nil
}

func exprToString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.BasicLit:
		return e.Value
	case *ast.SelectorExpr:
		return fmt.Sprintf("%s.%s", exprToString(e.X), e.Sel.Name)
	default:
		return fmt.Sprintf("%T", expr)
	}
}
