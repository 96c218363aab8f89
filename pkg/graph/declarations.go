package graph

import (
	"github.com/cpgtools/go-cpg/internal/ctypes"
)

// Declaration is a node that introduces a named entity.
type Declaration interface {
	Node
	declarationNode()
}

// ValueDeclaration is a declaration that carries a type (variables,
// parameters, functions).
type ValueDeclaration interface {
	Declaration
	TypedNode
}

// DeclarationBase is the common payload of declaration variants.
type DeclarationBase struct {
	NodeBase
}

func (db *DeclarationBase) declarationNode() {}

// TranslationUnitDeclaration is the root of one lowered translation
// unit; its name is the source file.
type TranslationUnitDeclaration struct {
	DeclarationBase
	declarations []Declaration
}

// Declarations returns the top-level declarations in source order.
func (t *TranslationUnitDeclaration) Declarations() []Declaration {
	out := make([]Declaration, len(t.declarations))
	copy(out, t.declarations)
	return out
}

// AddDeclaration appends a top-level declaration and its AST edge.
func (t *TranslationUnitDeclaration) AddDeclaration(d Declaration) {
	if d == nil {
		return
	}
	t.declarations = append(t.declarations, d)
	Adopt(t, d)
}

// RecordDeclaration declares a struct, class or union. It is the
// resolution target for named types in new-expressions.
type RecordDeclaration struct {
	DeclarationBase
	// Kind is "struct", "class" or "union".
	Kind string
}

// FunctionDeclaration declares a function; the body, when present, is
// a statement subtree. Call resolution is a later pass, the frontend
// only records the declaration.
type FunctionDeclaration struct {
	DeclarationBase
	TypedBase
	body Statement
}

// Body returns the function body, nil for a bare prototype.
func (f *FunctionDeclaration) Body() Statement { return f.body }

// SetBody installs the body and its AST edge.
func (f *FunctionDeclaration) SetBody(s Statement) {
	if f.body != nil {
		Disconnect(f.body)
	}
	f.body = s
	Adopt(f, s)
}

// VariableDeclaration declares a variable, optionally with an
// initializer. The initializer protocol wires a data-flow edge from
// the initializer to the variable and a type subscription in the
// opposite direction, so the variable firms up once the initializer's
// type is known.
type VariableDeclaration struct {
	DeclarationBase
	TypedBase

	// ImplicitInitializerAllowed records whether the language would
	// default-initialize this variable.
	ImplicitInitializerAllowed bool

	// IsArray marks array declarators; it controls whether a
	// brace-initializer's array layer is kept or stripped.
	IsArray bool

	initializer Expression
}

// Initializer returns the current initializer, nil if none.
func (v *VariableDeclaration) Initializer() Expression { return v.initializer }

// SetInitializer replaces the initializer. The previous initializer's
// data-flow edge and type subscriptions are removed before the new
// ones are installed, on every path.
func (v *VariableDeclaration) SetInitializer(e Expression) {
	if prev := v.initializer; prev != nil {
		RemoveDFG(prev, v)
		prev.UnregisterTypeListener(v)
		if listensBack(prev) {
			v.UnregisterTypeListener(prev)
		}
		Disconnect(prev)
	}

	v.initializer = e
	if e == nil {
		return
	}

	Adopt(v, e)
	AddDFG(e, v)
	e.RegisterTypeListener(v)
	if listensBack(e) {
		v.RegisterTypeListener(e)
	}
}

// listensBack reports whether an initializer wants to be informed
// when the declaration's type firms up. Constructor-style casts need
// this: the constructed type is the variable's declared type.
func listensBack(e Expression) bool {
	cast, ok := e.(*CastExpression)
	return ok && cast.Constructor
}

// TypeChanged specializes the subscriber policy for the initializer
// edge. A brace-enclosed initializer list carries an array layer that
// is only correct when the declared entity is an array; otherwise the
// layer is stripped, and an already-known declared type always wins.
func (v *VariableDeclaration) TypeChanged(src TypedNode, root TypedNode, oldType *ctypes.Type) {
	prop := src.PropagationType()
	if prop == nil || prop.IsUnknown() {
		return
	}
	if v.Type() != nil && !v.Type().IsUnknown() && prop == oldType {
		return
	}

	if v.initializer != nil && src == TypedNode(v.initializer) {
		if _, isList := v.initializer.(*InitializerListExpression); isList {
			srcType := src.Type()
			if srcType == nil || srcType.IsUnknown() {
				return
			}
			if v.IsArray {
				v.SetType(srcType.WithOrigin(ctypes.OriginDataflow), root)
				return
			}
			if !v.Type().IsUnknown() {
				// The list builds an object of the declared type, not
				// an array.
				return
			}
			v.SetType(srcType.Dereference().WithOrigin(ctypes.OriginDataflow), root)
			return
		}
	}

	v.TypedBase.TypeChanged(src, root, oldType)
}

// Equals reports structural equality of two variable declarations.
// The initializer participates: two declarations differing only in
// their initializer are not equal.
func (v *VariableDeclaration) Equals(other *VariableDeclaration) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.NodeName() != other.NodeName() ||
		v.Code() != other.Code() ||
		v.Location() != other.Location() ||
		v.IsArray != other.IsArray ||
		v.ImplicitInitializerAllowed != other.ImplicitInitializerAllowed {
		return false
	}
	if !v.Type().Equals(other.Type()) {
		return false
	}
	return v.initializer == other.initializer
}
