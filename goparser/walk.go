package goparser

import (
	"go/ast"

	"golang.org/x/tools/go/packages"
)

// walker finds cola.Generate/cola.MustGenerate call sites by a top-down
// ast.Walk, tracking the enclosing function declaration as it descends.
type walker struct{}

func NewWalker() *walker {
	return &walker{}
}

func (v *walker) FindGenerateCallSites(pkgs []*packages.Package) []CallSite {
	var sites []CallSite
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			visitor := &callVisitor{pkg: pkg, sites: &sites}
			ast.Walk(visitor, file)
		}
	}
	return sites
}

// callVisitor tracks the enclosing function name as ast.Walk descends; sites
// is a pointer shared by every copy so appends made deep in the tree are
// visible to the caller once the walk returns.
type callVisitor struct {
	pkg     *packages.Package
	enclose string
	sites   *[]CallSite
}

func (v *callVisitor) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		return nil
	}

	enclose := v.enclose
	if fn, ok := n.(*ast.FuncDecl); ok {
		enclose = fn.Name.Name
	}

	if call, ok := n.(*ast.CallExpr); ok {
		if isGenerate, isMust, err := IsGenerateFunc(call); err == nil && isGenerate {
			*v.sites = append(*v.sites, CallSite{
				Package:  v.pkg.PkgPath,
				Position: v.pkg.Fset.Position(call.Pos()),
				Func:     enclose,
				Must:     isMust,
			})
		}
	}

	return &callVisitor{pkg: v.pkg, enclose: enclose, sites: v.sites}
}
