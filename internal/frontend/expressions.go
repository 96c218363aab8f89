package frontend

import (
	"strings"

	"github.com/cpgtools/go-cpg/internal/ctypes"
	"github.com/cpgtools/go-cpg/internal/logging"
	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

// ============================================================================
// Expression Handlers
// ============================================================================

func (f *Frontend) handleIDExpression(e cxx.Expression) graph.Expression {
	id := e.(*cxx.IDExpression)
	loc := location(id.Loc)

	ref := graph.NewDeclaredReferenceExpression(loc, id.Raw, id.Name)
	f.record(ref)
	ref.SetType(f.typeFrom(id.ExprType, loc), nil)

	if decl := f.resolver.Resolve(id.Name); decl != nil {
		ref.Refers = decl
		if vd, ok := decl.(graph.ValueDeclaration); ok && ref.Type().IsUnknown() {
			ref.SetType(vd.Type(), nil)
		}
	}
	return ref
}

// handleUnary lowers unary operators. The bracketed primary "(e)" is
// transparent: the inner expression is returned unchanged.
func (f *Frontend) handleUnary(e cxx.Expression) graph.Expression {
	u := e.(*cxx.Unary)
	loc := location(u.Loc)

	if u.Operator == cxx.OpBracketedPrimary {
		if u.Operand == nil {
			logging.Errorf(loc, "bracketed primary without inner expression")
			g := graph.NewGenericExpression(loc, u.Raw)
			f.record(g)
			return g
		}
		return f.LowerExpression(u.Operand)
	}

	node := graph.NewUnaryOperator(loc, u.Raw, u.Operator.Spelling(), u.Operator.Prefix())
	f.record(node)
	if u.Operand != nil {
		node.SetOperand(f.LowerExpression(u.Operand))
	}
	node.SetType(f.typeFrom(u.ExprType, loc), nil)
	return node
}

// handleBinary lowers binary operators. Their type comes from the
// vendor-reported expression type; a problem type leaves it Unknown,
// no listener subscriptions are made.
func (f *Frontend) handleBinary(e cxx.Expression) graph.Expression {
	b := e.(*cxx.Binary)
	loc := location(b.Loc)

	node := graph.NewBinaryOperator(loc, b.Raw, b.Operator)
	f.record(node)
	if b.LHS != nil {
		node.SetLHS(f.LowerExpression(b.LHS))
	}
	if b.RHS != nil {
		node.SetRHS(f.LowerExpression(b.RHS))
	}
	node.SetType(f.typeFrom(b.ExprType, loc), nil)
	return node
}

// handleConditional lowers the ternary operator; an absent positive
// branch reuses the condition (the GNU "?:" shortcut).
func (f *Frontend) handleConditional(e cxx.Expression) graph.Expression {
	c := e.(*cxx.Conditional)
	loc := location(c.Loc)

	node := graph.NewConditionalExpression(loc, c.Raw)
	f.record(node)

	cond := f.LowerExpression(c.Condition)
	node.SetCondition(cond)
	if c.Positive != nil {
		node.SetThen(f.LowerExpression(c.Positive))
	} else {
		node.SetThen(cond)
	}
	if c.Negative != nil {
		node.SetElse(f.LowerExpression(c.Negative))
	}
	node.SetType(f.typeFrom(c.ExprType, loc), nil)
	return node
}

func (f *Frontend) handleFieldReference(e cxx.Expression) graph.Expression {
	fr := e.(*cxx.FieldReference)
	loc := location(fr.Loc)

	node := graph.NewMemberExpression(loc, fr.Raw, fr.FieldName)
	f.record(node)
	if fr.Base != nil {
		node.SetBase(f.LowerExpression(fr.Base))
	}

	member := graph.NewDeclaredReferenceExpression(loc, fr.FieldName, fr.FieldName)
	f.record(member)
	node.SetMember(member)

	node.SetType(f.typeFrom(fr.ExprType, loc), nil)
	return node
}

// handleCall decides the call shape from the lowered callee: a member
// expression or a "." binary operator becomes a member call, a "*"
// unary operator becomes a C-style function-pointer call with a nil
// base, anything else is a free call. The temporary callee node is
// disconnected afterwards so it does not linger as a stray child.
func (f *Frontend) handleCall(e cxx.Expression) graph.Expression {
	call := e.(*cxx.Call)
	loc := location(call.Loc)

	callee := f.LowerExpression(call.Callee)

	var node graph.Expression
	var addArgument func(graph.Expression)

	switch c := callee.(type) {
	case *graph.MemberExpression:
		name := ""
		if c.Member() != nil {
			name = c.Member().NodeName()
		}
		fqn := name
		if base := c.Base(); base != nil {
			fqn = base.Type().Name() + "." + name
		}
		mc := graph.NewMemberCallExpression(loc, call.Raw, name, fqn)
		f.record(mc)
		base, member := c.Base(), c.Member()
		graph.Disconnect(base)
		graph.Disconnect(member)
		mc.SetBase(base)
		mc.SetMember(member)
		f.disconnectCallee(c)
		node = mc
		addArgument = mc.AddArgument

	case *graph.BinaryOperator:
		if c.Operator != "." {
			node, addArgument = f.newFreeCall(call, callee, loc)
			break
		}
		name := ""
		if c.RHS() != nil {
			name = c.RHS().NodeName()
		}
		mc := graph.NewMemberCallExpression(loc, call.Raw, name, name)
		f.record(mc)
		lhs, rhs := c.LHS(), c.RHS()
		graph.Disconnect(lhs)
		graph.Disconnect(rhs)
		mc.SetBase(lhs)
		mc.SetMember(rhs)
		f.disconnectCallee(c)
		node = mc
		addArgument = mc.AddArgument

	case *graph.UnaryOperator:
		if c.Operator != "*" {
			node, addArgument = f.newFreeCall(call, callee, loc)
			break
		}
		// C-style function-pointer call: no base, the pointer is the
		// member slot.
		mc := graph.NewMemberCallExpression(loc, call.Raw, c.NodeName(), c.NodeName())
		f.record(mc)
		operand := c.Operand()
		graph.Disconnect(operand)
		mc.SetMember(operand)
		f.disconnectCallee(c)
		node = mc
		addArgument = mc.AddArgument

	default:
		node, addArgument = f.newFreeCall(call, callee, loc)
	}

	for _, arg := range call.Arguments {
		addArgument(f.LowerExpression(arg))
	}
	node.SetType(f.typeFrom(call.ExprType, loc), nil)
	return node
}

// newFreeCall builds a free call from the textual callee name:
// "a::b::f" yields name "f" and fully-qualified name "a.b.f".
func (f *Frontend) newFreeCall(call *cxx.Call, callee graph.Expression, loc graph.Location) (graph.Expression, func(graph.Expression)) {
	text := callee.Code()
	if ref, ok := callee.(*graph.DeclaredReferenceExpression); ok && ref.NodeName() != "" {
		text = ref.NodeName()
	}

	name := text
	if i := strings.LastIndex(text, "::"); i >= 0 {
		name = text[i+2:]
	}
	fqn := strings.ReplaceAll(text, "::", ".")
	// TODO: the scope prefix below is only correct for enclosing
	// namespaces; a call inside a class method needs the class name
	// handled differently.
	if prefix := f.scope.CurrentPrefix(); prefix != "" && !strings.Contains(fqn, ".") {
		fqn = prefix + "." + fqn
	}

	node := graph.NewCallExpression(loc, call.Raw, name, fqn)
	f.record(node)
	f.disconnectCallee(callee)
	return node, node.AddArgument
}

// disconnectCallee removes a temporary callee node from the graph and
// the node table once its shape has been consumed.
func (f *Frontend) disconnectCallee(callee graph.Expression) {
	if callee == nil {
		return
	}
	graph.Disconnect(callee)
	f.unrecord(callee)
}

// handleCast computes the target type from the vendor-reported type,
// falling back to the declared spelling when the vendor reports a
// problem. A primitive target or a C-style cast fixes the node's
// type; any other target subscribes the cast to its operand.
func (f *Frontend) handleCast(e cxx.Expression) graph.Expression {
	cast := e.(*cxx.Cast)
	loc := location(cast.Loc)

	vt := cast.ExprType
	var target *ctypes.Type
	switch {
	case vt != nil && vt.Pointee != nil && vt.Pointee.Problem:
		logging.Debugf(loc, "cast type is a pointer to a problem type, using declared spelling")
		target = f.registry.CreateFrom(cast.DeclaredType+"*", false)
	case vt != nil && vt.Pointee != nil:
		target = f.registry.CreateFrom(vt.Pointee.Spelling+"*", false)
	case vt != nil && vt.Problem:
		logging.Debugf(loc, "cast type is a problem type, using declared spelling")
		target = f.registry.CreateFrom(cast.DeclaredType, false)
	case vt != nil:
		target = f.registry.CreateFrom(vt.Spelling, false)
	default:
		target = f.registry.CreateFrom(cast.DeclaredType, false)
	}

	node := graph.NewCastExpression(loc, cast.Raw, castKind(cast.Operator))
	f.record(node)
	node.SetCastType(target)
	node.SetType(target, nil)

	var operand graph.Expression
	if cast.Operand != nil {
		operand = f.LowerExpression(cast.Operand)
		node.SetOperand(operand)
	}

	if operand != nil && !target.IsPrimitive() && cast.Operator != cxx.CastOpCStyle {
		operand.RegisterTypeListener(node)
	}
	return node
}

func castKind(op int) graph.CastKind {
	switch op {
	case cxx.CastOpStatic:
		return graph.CastStatic
	case cxx.CastOpDynamic:
		return graph.CastDynamic
	case cxx.CastOpReinterpret:
		return graph.CastReinterpret
	case cxx.CastOpConst:
		return graph.CastConst
	case cxx.CastOpCStyle:
		return graph.CastCStyle
	default:
		return graph.CastImplicit
	}
}

// handleNew lowers operator new. The allocated type is the declared
// spelling made a pointer; a named-type declarator that resolves to a
// record declaration uses the resolved record's spelling instead.
func (f *Frontend) handleNew(e cxx.Expression) graph.Expression {
	n := e.(*cxx.New)
	loc := location(n.Loc)

	base := f.registry.CreateFrom(n.DeclaredType, true)
	if n.NamedType {
		if decl := f.resolver.Resolve(n.DeclaredType); decl != nil {
			if rec, ok := decl.(*graph.RecordDeclaration); ok {
				base = f.registry.CreateFrom(rec.NodeName(), true)
			}
		}
	}

	node := graph.NewNewExpression(loc, n.Raw)
	f.record(node)
	node.SetType(base.PointerTo(ctypes.PointerOriginArray), nil)

	if n.Initializer != nil {
		node.SetInitializer(f.LowerExpression(n.Initializer))
	}
	return node
}

func (f *Frontend) handleDelete(e cxx.Expression) graph.Expression {
	d := e.(*cxx.Delete)
	loc := location(d.Loc)

	node := graph.NewDeleteExpression(loc, d.Raw)
	f.record(node)
	if d.Operand != nil {
		node.SetOperand(f.LowerExpression(d.Operand))
	}
	node.SetType(f.registry.CreateFrom("void", false), nil)
	return node
}

func (f *Frontend) handleInitializerList(e cxx.Expression) graph.Expression {
	list := e.(*cxx.InitializerList)
	loc := location(list.Loc)

	node := graph.NewInitializerListExpression(loc, list.Raw)
	f.record(node)
	for _, clause := range list.Clauses {
		node.AddInitializer(f.LowerExpression(clause))
	}
	node.SetType(f.typeFrom(list.ExprType, loc), nil)
	return node
}

// handleDesignatedInitializer lowers each designator to one left-hand
// expression: a subscript to its index, a field to an untyped
// reference, a range to an array-range node.
func (f *Frontend) handleDesignatedInitializer(e cxx.Expression) graph.Expression {
	des := e.(*cxx.DesignatedInitializer)
	loc := location(des.Loc)

	node := graph.NewDesignatedInitializerExpression(loc, des.Raw)
	f.record(node)

	for _, d := range des.Designators {
		switch d := d.(type) {
		case cxx.SubscriptDesignator:
			node.AddLHS(f.LowerExpression(d.Index))
		case cxx.FieldDesignator:
			ref := graph.NewDeclaredReferenceExpression(loc, d.Name, d.Name)
			f.record(ref)
			node.AddLHS(ref)
		case cxx.RangeDesignator:
			rng := graph.NewArrayRangeExpression(loc, des.Raw)
			f.record(rng)
			rng.SetFloor(f.LowerExpression(d.Floor))
			rng.SetCeiling(f.LowerExpression(d.Ceiling))
			node.AddLHS(rng)
		default:
			logging.Errorf(loc, "unknown designator shape %T", d)
		}
	}

	if des.Operand != nil {
		node.SetRHS(f.LowerExpression(des.Operand))
	}
	node.SetType(f.typeFrom(des.ExprType, loc), nil)
	return node
}

func (f *Frontend) handleArraySubscript(e cxx.Expression) graph.Expression {
	sub := e.(*cxx.ArraySubscript)
	loc := location(sub.Loc)

	node := graph.NewArraySubscriptionExpression(loc, sub.Raw)
	f.record(node)
	if sub.Array != nil {
		node.SetArray(f.LowerExpression(sub.Array))
	}
	if sub.Index != nil {
		node.SetIndex(f.LowerExpression(sub.Index))
	}
	node.SetType(f.typeFrom(sub.ExprType, loc), nil)
	return node
}

// handleTypeID maps the vendor operator code to its canonical result
// type: sizeof and alignof yield std::size_t, typeid a reference to
// std::type_info, typeof stays Unknown.
func (f *Frontend) handleTypeID(e cxx.Expression) graph.Expression {
	tid := e.(*cxx.TypeID)
	loc := location(tid.Loc)

	var result *ctypes.Type
	switch tid.Operator {
	case cxx.TypeIDOpSizeof, cxx.TypeIDOpAlignof:
		result = f.registry.CreateFrom("std::size_t", false)
	case cxx.TypeIDOpTypeid:
		result = f.registry.CreateFrom("const std::type_info&", false)
	default:
		result = f.registry.Unknown()
	}

	referenced := f.registry.CreateFrom(tid.TypeName, true)
	node := graph.NewTypeIdExpression(loc, tid.Raw, tid.Operator, referenced, result)
	f.record(node)
	return node
}

func (f *Frontend) handleExpressionList(e cxx.Expression) graph.Expression {
	list := e.(*cxx.ExpressionList)
	loc := location(list.Loc)

	node := graph.NewExpressionList(loc, list.Raw)
	f.record(node)
	var last graph.Expression
	for _, x := range list.Expressions {
		last = f.LowerExpression(x)
		node.AddExpression(last)
	}

	t := f.typeFrom(list.ExprType, loc)
	if t.IsUnknown() && last != nil {
		t = last.Type()
	}
	node.SetType(t, nil)
	return node
}

func (f *Frontend) handleCompoundStatementExpr(e cxx.Expression) graph.Expression {
	cse := e.(*cxx.CompoundStatementExpr)
	loc := location(cse.Loc)

	node := graph.NewCompoundStatementExpression(loc, cse.Raw)
	f.record(node)
	if cse.Body != nil {
		node.SetStatement(f.lowerCompound(cse.Body))
	}
	node.SetType(f.typeFrom(cse.ExprType, loc), nil)
	return node
}

// handleTypeConstructor lowers the simple-type-constructor form T(x),
// reusing the cast node with the constructor flag so a declaration it
// initializes can feed its type back.
func (f *Frontend) handleTypeConstructor(e cxx.Expression) graph.Expression {
	tc := e.(*cxx.TypeConstructor)
	loc := location(tc.Loc)

	target := f.registry.CreateFrom(tc.DeclaredType, true)
	node := graph.NewConstructExpression(loc, tc.Raw)
	f.record(node)
	node.SetCastType(target)
	node.SetType(target, nil)

	if tc.Operand != nil {
		node.SetOperand(f.LowerExpression(tc.Operand))
	}
	return node
}
