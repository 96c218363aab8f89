package graph

import (
	"math/big"

	"github.com/cpgtools/go-cpg/internal/ctypes"
)

// Expression is a typed node that produces a value. Expressions also
// satisfy Statement, mirroring C/C++ expression statements.
type Expression interface {
	TypedNode
	expressionNode()
	statementNode()
}

// ExpressionBase is the common payload of every expression variant.
type ExpressionBase struct {
	NodeBase
	TypedBase
}

func (eb *ExpressionBase) expressionNode() {}
func (eb *ExpressionBase) statementNode()  {}

// Literal is a constant value. Value holds int64, *big.Int, float32,
// float64, bool, rune or string depending on the literal kind.
type Literal struct {
	ExpressionBase
	Value any
}

// BigValue returns the literal value as a big integer when it holds
// one, for callers that need to inspect wide literals uniformly.
func (l *Literal) BigValue() (*big.Int, bool) {
	switch v := l.Value.(type) {
	case *big.Int:
		return v, true
	case int64:
		return big.NewInt(v), true
	default:
		return nil, false
	}
}

// DeclaredReferenceExpression is a use of a named entity. Refers
// holds the REFERS_TO edge once the binding has been resolved.
type DeclaredReferenceExpression struct {
	ExpressionBase
	Refers Declaration
}

// UnaryOperator applies a single-operand operator such as "*", "&",
// "!", "++" or "sizeof".
type UnaryOperator struct {
	ExpressionBase
	Operator string
	Prefix   bool
	operand  Expression
}

// Operand returns the operand expression.
func (u *UnaryOperator) Operand() Expression { return u.operand }

// SetOperand installs the operand and its AST edge.
func (u *UnaryOperator) SetOperand(e Expression) {
	if u.operand != nil {
		Disconnect(u.operand)
	}
	u.operand = e
	Adopt(u, e)
}

// BinaryOperator applies a two-operand operator; the operator string
// is the C++ spelling ("+", "<<=", ".", ...).
type BinaryOperator struct {
	ExpressionBase
	Operator string
	lhs      Expression
	rhs      Expression
}

// LHS returns the left operand.
func (b *BinaryOperator) LHS() Expression { return b.lhs }

// RHS returns the right operand.
func (b *BinaryOperator) RHS() Expression { return b.rhs }

// SetLHS installs the left operand and its AST edge.
func (b *BinaryOperator) SetLHS(e Expression) {
	if b.lhs != nil {
		Disconnect(b.lhs)
	}
	b.lhs = e
	Adopt(b, e)
}

// SetRHS installs the right operand and its AST edge.
func (b *BinaryOperator) SetRHS(e Expression) {
	if b.rhs != nil {
		Disconnect(b.rhs)
	}
	b.rhs = e
	Adopt(b, e)
}

// ConditionalExpression is the ternary ?: operator.
type ConditionalExpression struct {
	ExpressionBase
	condition Expression
	thenExpr  Expression
	elseExpr  Expression
}

func (c *ConditionalExpression) Condition() Expression { return c.condition }
func (c *ConditionalExpression) Then() Expression      { return c.thenExpr }
func (c *ConditionalExpression) Else() Expression      { return c.elseExpr }

// SetCondition installs the condition and its AST edge.
func (c *ConditionalExpression) SetCondition(e Expression) {
	if c.condition != nil {
		Disconnect(c.condition)
	}
	c.condition = e
	Adopt(c, e)
}

// SetThen installs the positive branch. The GNU "?:" shortcut reuses
// the condition here; in that case no second AST edge is added.
func (c *ConditionalExpression) SetThen(e Expression) {
	if c.thenExpr != nil && c.thenExpr != c.condition {
		Disconnect(c.thenExpr)
	}
	c.thenExpr = e
	if e != c.condition {
		Adopt(c, e)
	}
}

// SetElse installs the negative branch and its AST edge.
func (c *ConditionalExpression) SetElse(e Expression) {
	if c.elseExpr != nil {
		Disconnect(c.elseExpr)
	}
	c.elseExpr = e
	Adopt(c, e)
}

// CastKind enumerates the C++ cast flavours.
type CastKind int

const (
	CastStatic CastKind = iota
	CastDynamic
	CastReinterpret
	CastConst
	CastCStyle
	CastImplicit
)

func (k CastKind) String() string {
	switch k {
	case CastStatic:
		return "static_cast"
	case CastDynamic:
		return "dynamic_cast"
	case CastReinterpret:
		return "reinterpret_cast"
	case CastConst:
		return "const_cast"
	case CastCStyle:
		return "cast"
	case CastImplicit:
		return "implicit"
	default:
		return "cast"
	}
}

// CastExpression converts its operand to a target type. Constructor
// marks the simple-type-constructor form T(x), which additionally
// listens back on a declaration it initializes.
type CastExpression struct {
	ExpressionBase
	Kind        CastKind
	Constructor bool
	castType    *ctypes.Type
	operand     Expression
}

// CastType returns the declared target type.
func (c *CastExpression) CastType() *ctypes.Type { return c.castType }

// SetCastType fixes the declared target type.
func (c *CastExpression) SetCastType(t *ctypes.Type) { c.castType = t }

// Operand returns the casted expression.
func (c *CastExpression) Operand() Expression { return c.operand }

// SetOperand installs the operand and its AST edge.
func (c *CastExpression) SetOperand(e Expression) {
	if c.operand != nil {
		Disconnect(c.operand)
	}
	c.operand = e
	Adopt(c, e)
}

// PropagationType advertises the declared cast target instead of the
// current type, so that "T v = (T) e;" infers T for v rather than the
// operand's original type.
func (c *CastExpression) PropagationType() *ctypes.Type {
	if c.castType != nil && !c.castType.IsUnknown() {
		return c.castType
	}
	return c.Type()
}

// CallExpression is a free function call.
type CallExpression struct {
	ExpressionBase
	// Fqn is the fully-qualified callee name with "." separators.
	Fqn       string
	arguments []Expression
}

// Arguments returns the argument expressions in call order.
func (c *CallExpression) Arguments() []Expression {
	out := make([]Expression, len(c.arguments))
	copy(out, c.arguments)
	return out
}

// AddArgument appends an argument and its AST edge.
func (c *CallExpression) AddArgument(e Expression) {
	if e == nil {
		return
	}
	c.arguments = append(c.arguments, e)
	Adopt(c.callSelf(), e)
}

// callSelf resolves the outermost node for AST edges, so that
// arguments added through an embedded CallExpression attach to the
// member call wrapping it.
func (c *CallExpression) callSelf() Node {
	if c.self != nil {
		return c.self
	}
	return c
}

// MemberCallExpression is a call through an object or function
// pointer. It has exactly the two operand slots base and member; a
// C-style function-pointer call has a nil base.
type MemberCallExpression struct {
	CallExpression
	baseExpr Expression
	member   Expression
}

// Base returns the receiver expression, nil for function-pointer
// calls.
func (m *MemberCallExpression) Base() Expression { return m.baseExpr }

// Member returns the member slot.
func (m *MemberCallExpression) Member() Expression { return m.member }

// SetBase installs the receiver and its AST edge.
func (m *MemberCallExpression) SetBase(e Expression) {
	if m.baseExpr != nil {
		Disconnect(m.baseExpr)
	}
	m.baseExpr = e
	Adopt(m, e)
}

// SetMember installs the member slot and its AST edge.
func (m *MemberCallExpression) SetMember(e Expression) {
	if m.member != nil {
		Disconnect(m.member)
	}
	m.member = e
	Adopt(m, e)
}

// MemberExpression is a field access (base.member or base->member).
type MemberExpression struct {
	ExpressionBase
	baseExpr Expression
	member   Expression
}

func (m *MemberExpression) Base() Expression   { return m.baseExpr }
func (m *MemberExpression) Member() Expression { return m.member }

// SetBase installs the accessed object and its AST edge.
func (m *MemberExpression) SetBase(e Expression) {
	if m.baseExpr != nil {
		Disconnect(m.baseExpr)
	}
	m.baseExpr = e
	Adopt(m, e)
}

// SetMember installs the member reference and its AST edge.
func (m *MemberExpression) SetMember(e Expression) {
	if m.member != nil {
		Disconnect(m.member)
	}
	m.member = e
	Adopt(m, e)
}

// ArraySubscriptionExpression is an indexing expression a[i].
type ArraySubscriptionExpression struct {
	ExpressionBase
	arrayExpr Expression
	index     Expression
}

func (a *ArraySubscriptionExpression) Array() Expression { return a.arrayExpr }
func (a *ArraySubscriptionExpression) Index() Expression { return a.index }

// SetArray installs the indexed expression and its AST edge.
func (a *ArraySubscriptionExpression) SetArray(e Expression) {
	if a.arrayExpr != nil {
		Disconnect(a.arrayExpr)
	}
	a.arrayExpr = e
	Adopt(a, e)
}

// SetIndex installs the index expression and its AST edge.
func (a *ArraySubscriptionExpression) SetIndex(e Expression) {
	if a.index != nil {
		Disconnect(a.index)
	}
	a.index = e
	Adopt(a, e)
}

// NewExpression is operator new; its type is the allocated type made
// a pointer.
type NewExpression struct {
	ExpressionBase
	initializer Expression
}

// Initializer returns the optional new-initializer.
func (n *NewExpression) Initializer() Expression { return n.initializer }

// SetInitializer installs the new-initializer and its AST edge.
func (n *NewExpression) SetInitializer(e Expression) {
	if n.initializer != nil {
		Disconnect(n.initializer)
	}
	n.initializer = e
	Adopt(n, e)
}

// DeleteExpression is operator delete.
type DeleteExpression struct {
	ExpressionBase
	operand Expression
}

// Operand returns the deleted expression.
func (d *DeleteExpression) Operand() Expression { return d.operand }

// SetOperand installs the operand and its AST edge.
func (d *DeleteExpression) SetOperand(e Expression) {
	if d.operand != nil {
		Disconnect(d.operand)
	}
	d.operand = e
	Adopt(d, e)
}

// InitializerListExpression is a brace-enclosed initializer list.
type InitializerListExpression struct {
	ExpressionBase
	initializers []Expression
}

// Initializers returns the clauses in source order.
func (i *InitializerListExpression) Initializers() []Expression {
	out := make([]Expression, len(i.initializers))
	copy(out, i.initializers)
	return out
}

// AddInitializer appends a clause and its AST edge.
func (i *InitializerListExpression) AddInitializer(e Expression) {
	if e == nil {
		return
	}
	i.initializers = append(i.initializers, e)
	Adopt(i, e)
}

// DesignatedInitializerExpression is a C99/C++20 designated
// initializer: one or more designators on the left, a value on the
// right.
type DesignatedInitializerExpression struct {
	ExpressionBase
	lhs []Expression
	rhs Expression
}

// LHS returns the lowered designators in source order.
func (d *DesignatedInitializerExpression) LHS() []Expression {
	out := make([]Expression, len(d.lhs))
	copy(out, d.lhs)
	return out
}

// RHS returns the assigned value.
func (d *DesignatedInitializerExpression) RHS() Expression { return d.rhs }

// AddLHS appends a lowered designator and its AST edge.
func (d *DesignatedInitializerExpression) AddLHS(e Expression) {
	if e == nil {
		return
	}
	d.lhs = append(d.lhs, e)
	Adopt(d, e)
}

// SetRHS installs the assigned value and its AST edge.
func (d *DesignatedInitializerExpression) SetRHS(e Expression) {
	if d.rhs != nil {
		Disconnect(d.rhs)
	}
	d.rhs = e
	Adopt(d, e)
}

// ArrayRangeExpression is a GNU array-range designator [floor ... ceiling].
type ArrayRangeExpression struct {
	ExpressionBase
	floor   Expression
	ceiling Expression
}

func (a *ArrayRangeExpression) Floor() Expression   { return a.floor }
func (a *ArrayRangeExpression) Ceiling() Expression { return a.ceiling }

// SetFloor installs the lower bound and its AST edge.
func (a *ArrayRangeExpression) SetFloor(e Expression) {
	if a.floor != nil {
		Disconnect(a.floor)
	}
	a.floor = e
	Adopt(a, e)
}

// SetCeiling installs the upper bound and its AST edge.
func (a *ArrayRangeExpression) SetCeiling(e Expression) {
	if a.ceiling != nil {
		Disconnect(a.ceiling)
	}
	a.ceiling = e
	Adopt(a, e)
}

// ExpressionList is a comma-joined sequence of expressions.
type ExpressionList struct {
	ExpressionBase
	expressions []Expression
}

// Expressions returns the members in source order.
func (e *ExpressionList) Expressions() []Expression {
	out := make([]Expression, len(e.expressions))
	copy(out, e.expressions)
	return out
}

// AddExpression appends a member and its AST edge.
func (e *ExpressionList) AddExpression(x Expression) {
	if x == nil {
		return
	}
	e.expressions = append(e.expressions, x)
	Adopt(e, x)
}

// CompoundStatementExpression is the GNU statement expression
// ({ ...; }).
type CompoundStatementExpression struct {
	ExpressionBase
	statement Statement
}

// Statement returns the wrapped compound statement.
func (c *CompoundStatementExpression) Statement() Statement { return c.statement }

// SetStatement installs the wrapped statement and its AST edge.
func (c *CompoundStatementExpression) SetStatement(s Statement) {
	if c.statement != nil {
		Disconnect(c.statement)
	}
	c.statement = s
	Adopt(c, s)
}

// TypeIdExpression covers sizeof, typeid, alignof and typeof applied
// to a type-id. ReferencedType is the probed type; the node's own
// type is the operator's canonical result type.
type TypeIdExpression struct {
	ExpressionBase
	OperatorCode   int
	ReferencedType *ctypes.Type
}

// GenericExpression stands in for a vendor node shape the frontend
// does not recognize; the error policy keeps it in the graph instead
// of failing the translation unit.
type GenericExpression struct {
	ExpressionBase
}
