package goparser

import (
	"go/ast"

	"golang.org/x/tools/go/packages"
)

// inspector finds cola.Generate/cola.MustGenerate call sites with a single
// ast.Inspect pass per file instead of walker's ast.Walk recursion, tracking
// the enclosing function with an explicit stack popped on nil (ast.Inspect's
// post-order signal).
type inspector struct{}

func NewInspector() *inspector {
	return &inspector{}
}

func (i *inspector) FindGenerateCallSites(pkgs []*packages.Package) []CallSite {
	var sites []CallSite
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			var stack []ast.Node
			ast.Inspect(file, func(n ast.Node) bool {
				if n == nil {
					stack = stack[:len(stack)-1]
					return true
				}
				stack = append(stack, n)

				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}

				isGenerate, isMust, err := IsGenerateFunc(call)
				if err != nil || !isGenerate {
					return true
				}

				sites = append(sites, CallSite{
					Package:  pkg.PkgPath,
					Position: pkg.Fset.Position(call.Pos()),
					Func:     enclosingFunc(stack),
					Must:     isMust,
				})
				return true
			})
		}
	}
	return sites
}

func enclosingFunc(stack []ast.Node) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if fn, ok := stack[i].(*ast.FuncDecl); ok {
			return fn.Name.Name
		}
	}
	return ""
}
