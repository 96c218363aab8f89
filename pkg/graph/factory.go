package graph

import (
	"github.com/cpgtools/go-cpg/internal/ctypes"
)

// Factory constructors produce nodes with location, raw code, name
// and a default Unknown type. They never establish data-flow or
// listener edges; wiring is the caller's responsibility.

func newHeader(nb *NodeBase, loc Location, code, name string) {
	nb.loc = loc
	nb.code = code
	nb.name = name
}

// NewTranslationUnitDeclaration creates the root node for one source
// file.
func NewTranslationUnitDeclaration(loc Location, code, file string) *TranslationUnitDeclaration {
	t := &TranslationUnitDeclaration{}
	newHeader(&t.NodeBase, loc, code, file)
	return t
}

// NewRecordDeclaration creates a struct/class/union declaration.
func NewRecordDeclaration(loc Location, code, name, kind string) *RecordDeclaration {
	r := &RecordDeclaration{Kind: kind}
	newHeader(&r.NodeBase, loc, code, name)
	return r
}

// NewFunctionDeclaration creates a function declaration.
func NewFunctionDeclaration(loc Location, code, name string) *FunctionDeclaration {
	f := &FunctionDeclaration{}
	newHeader(&f.NodeBase, loc, code, name)
	f.initTyped(f)
	return f
}

// NewVariableDeclaration creates a variable declaration.
func NewVariableDeclaration(loc Location, code, name string, implicitInitializerAllowed bool) *VariableDeclaration {
	v := &VariableDeclaration{ImplicitInitializerAllowed: implicitInitializerAllowed}
	newHeader(&v.NodeBase, loc, code, name)
	v.initTyped(v)
	return v
}

// NewLiteral creates a literal carrying the given value and type.
func NewLiteral(loc Location, code string, value any, t *ctypes.Type) *Literal {
	l := &Literal{Value: value}
	newHeader(&l.NodeBase, loc, code, code)
	l.initTyped(l)
	if t != nil {
		l.typ = t
	}
	return l
}

// NewDeclaredReferenceExpression creates a reference to a named
// entity; the REFERS_TO edge is resolved by the caller.
func NewDeclaredReferenceExpression(loc Location, code, name string) *DeclaredReferenceExpression {
	d := &DeclaredReferenceExpression{}
	newHeader(&d.NodeBase, loc, code, name)
	d.initTyped(d)
	return d
}

// NewUnaryOperator creates a unary operator node.
func NewUnaryOperator(loc Location, code, operator string, prefix bool) *UnaryOperator {
	u := &UnaryOperator{Operator: operator, Prefix: prefix}
	newHeader(&u.NodeBase, loc, code, operator)
	u.initTyped(u)
	return u
}

// NewBinaryOperator creates a binary operator node.
func NewBinaryOperator(loc Location, code, operator string) *BinaryOperator {
	b := &BinaryOperator{Operator: operator}
	newHeader(&b.NodeBase, loc, code, operator)
	b.initTyped(b)
	return b
}

// NewConditionalExpression creates a ternary expression node.
func NewConditionalExpression(loc Location, code string) *ConditionalExpression {
	c := &ConditionalExpression{}
	newHeader(&c.NodeBase, loc, code, "?:")
	c.initTyped(c)
	return c
}

// NewCastExpression creates a cast of the given flavour.
func NewCastExpression(loc Location, code string, kind CastKind) *CastExpression {
	c := &CastExpression{Kind: kind, castType: ctypes.UnknownType}
	newHeader(&c.NodeBase, loc, code, kind.String())
	c.initTyped(c)
	return c
}

// NewConstructExpression creates the simple-type-constructor form of
// a cast (T(x)); it reuses CastExpression with the Constructor flag.
func NewConstructExpression(loc Location, code string) *CastExpression {
	c := NewCastExpression(loc, code, CastCStyle)
	c.Constructor = true
	return c
}

// NewCallExpression creates a free function call.
func NewCallExpression(loc Location, code, name, fqn string) *CallExpression {
	c := &CallExpression{Fqn: fqn}
	newHeader(&c.NodeBase, loc, code, name)
	c.initTyped(c)
	return c
}

// NewMemberCallExpression creates a member or function-pointer call.
func NewMemberCallExpression(loc Location, code, name, fqn string) *MemberCallExpression {
	m := &MemberCallExpression{}
	m.Fqn = fqn
	newHeader(&m.NodeBase, loc, code, name)
	m.initTyped(m)
	return m
}

// NewMemberExpression creates a field access node.
func NewMemberExpression(loc Location, code, name string) *MemberExpression {
	m := &MemberExpression{}
	newHeader(&m.NodeBase, loc, code, name)
	m.initTyped(m)
	return m
}

// NewArraySubscriptionExpression creates an indexing node.
func NewArraySubscriptionExpression(loc Location, code string) *ArraySubscriptionExpression {
	a := &ArraySubscriptionExpression{}
	newHeader(&a.NodeBase, loc, code, "")
	a.initTyped(a)
	return a
}

// NewNewExpression creates an operator-new node.
func NewNewExpression(loc Location, code string) *NewExpression {
	n := &NewExpression{}
	newHeader(&n.NodeBase, loc, code, "new")
	n.initTyped(n)
	return n
}

// NewDeleteExpression creates an operator-delete node.
func NewDeleteExpression(loc Location, code string) *DeleteExpression {
	d := &DeleteExpression{}
	newHeader(&d.NodeBase, loc, code, "delete")
	d.initTyped(d)
	return d
}

// NewInitializerListExpression creates a brace-initializer node.
func NewInitializerListExpression(loc Location, code string) *InitializerListExpression {
	i := &InitializerListExpression{}
	newHeader(&i.NodeBase, loc, code, "")
	i.initTyped(i)
	return i
}

// NewDesignatedInitializerExpression creates a designated-initializer
// node.
func NewDesignatedInitializerExpression(loc Location, code string) *DesignatedInitializerExpression {
	d := &DesignatedInitializerExpression{}
	newHeader(&d.NodeBase, loc, code, "")
	d.initTyped(d)
	return d
}

// NewArrayRangeExpression creates an array-range designator node.
func NewArrayRangeExpression(loc Location, code string) *ArrayRangeExpression {
	a := &ArrayRangeExpression{}
	newHeader(&a.NodeBase, loc, code, "")
	a.initTyped(a)
	return a
}

// NewExpressionList creates a comma-expression node.
func NewExpressionList(loc Location, code string) *ExpressionList {
	e := &ExpressionList{}
	newHeader(&e.NodeBase, loc, code, "")
	e.initTyped(e)
	return e
}

// NewCompoundStatementExpression creates a GNU statement-expression
// node.
func NewCompoundStatementExpression(loc Location, code string) *CompoundStatementExpression {
	c := &CompoundStatementExpression{}
	newHeader(&c.NodeBase, loc, code, "")
	c.initTyped(c)
	return c
}

// NewTypeIdExpression creates a sizeof/typeid/alignof/typeof node.
func NewTypeIdExpression(loc Location, code string, operatorCode int, referenced, result *ctypes.Type) *TypeIdExpression {
	t := &TypeIdExpression{OperatorCode: operatorCode, ReferencedType: referenced}
	newHeader(&t.NodeBase, loc, code, code)
	t.initTyped(t)
	if result != nil {
		t.typ = result
	}
	return t
}

// NewGenericExpression creates the fallback node for unrecognized
// vendor shapes.
func NewGenericExpression(loc Location, code string) *GenericExpression {
	g := &GenericExpression{}
	newHeader(&g.NodeBase, loc, code, "")
	g.initTyped(g)
	return g
}

// NewCompoundStatement creates a braced block node.
func NewCompoundStatement(loc Location, code string) *CompoundStatement {
	c := &CompoundStatement{}
	newHeader(&c.NodeBase, loc, code, "")
	return c
}

// NewDeclarationStatement creates a declaration-statement node.
func NewDeclarationStatement(loc Location, code string) *DeclarationStatement {
	d := &DeclarationStatement{}
	newHeader(&d.NodeBase, loc, code, "")
	return d
}

// NewReturnStatement creates a return-statement node.
func NewReturnStatement(loc Location, code string) *ReturnStatement {
	r := &ReturnStatement{}
	newHeader(&r.NodeBase, loc, code, "return")
	return r
}

// NewForStatement creates a for-loop node with all slots empty.
func NewForStatement(loc Location, code string) *ForStatement {
	f := &ForStatement{}
	newHeader(&f.NodeBase, loc, code, "for")
	return f
}
