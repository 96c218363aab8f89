package frontend

import (
	"github.com/cpgtools/go-cpg/internal/logging"
	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

// ============================================================================
// Declaration Lowering
// ============================================================================

// lowerDeclarator lowers one declared variable. The declared type is
// canonicalized with alias resolution; "auto" stays Unknown so the
// initializer can supply it through propagation. After the
// initializer is wired, its current type is replayed through the
// fresh subscription: a declared type wins, an Unknown one firms up.
func (f *Frontend) lowerDeclarator(d *cxx.Declarator) *graph.VariableDeclaration {
	loc := location(d.Loc)

	v := graph.NewVariableDeclaration(loc, d.Raw, d.Name, true)
	v.IsArray = d.IsArray
	f.record(v)

	if d.TypeSpelling != "" && d.TypeSpelling != "auto" {
		t := f.registry.CreateFrom(d.TypeSpelling, true)
		if t.IsUnknown() {
			logging.Debugf(loc, "cannot canonicalize declared type %q", d.TypeSpelling)
		}
		v.SetType(t, nil)
	}

	if d.Initializer != nil {
		e := f.LowerExpression(d.Initializer)
		v.SetInitializer(e)
		if e != nil {
			v.TypeChanged(e, v, e.PropagationType())
		}
	}

	f.define(d.Name, v)
	return v
}

// lowerFunction lowers a function definition. The frontend records
// the declaration and its body; resolving calls against it is a later
// pass.
func (f *Frontend) lowerFunction(fn *cxx.FunctionDef) *graph.FunctionDeclaration {
	loc := location(fn.Loc)

	decl := graph.NewFunctionDeclaration(loc, fn.Raw, fn.Name)
	f.record(decl)
	decl.SetType(f.registry.CreateFrom(fn.ReturnType, true), nil)

	if fn.Body != nil {
		decl.SetBody(f.lowerCompound(fn.Body))
	}

	f.define(fn.Name, decl)
	return decl
}
