// Package cxxjson decodes JSON dumps of a vendor AST into cxx nodes.
// The format is a plain tree of objects, each with a "kind" string;
// unknown kinds decode to cxx.UnknownExpression so the frontend's
// placeholder policy applies instead of the decoder failing.
package cxxjson

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/cpgtools/go-cpg/pkg/cxx"
)

// Decode parses a vendor AST dump. The root object must be a
// TranslationUnit.
func Decode(data []byte) (*cxx.TranslationUnit, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("cxxjson: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if kind := root.Get("kind").String(); kind != "TranslationUnit" {
		return nil, fmt.Errorf("cxxjson: root kind %q, want TranslationUnit", kind)
	}

	tu := &cxx.TranslationUnit{
		NodeInfo: nodeInfo(root),
		File:     root.Get("file").String(),
	}
	root.Get("declarations").ForEach(func(_, decl gjson.Result) bool {
		tu.Declarations = append(tu.Declarations, decodeTopLevel(decl))
		return true
	})
	return tu, nil
}

func nodeInfo(r gjson.Result) cxx.NodeInfo {
	loc := r.Get("loc")
	return cxx.NodeInfo{
		Loc: cxx.Location{
			File:        loc.Get("file").String(),
			StartLine:   int(loc.Get("startLine").Int()),
			StartColumn: int(loc.Get("startColumn").Int()),
			EndLine:     int(loc.Get("endLine").Int()),
			EndColumn:   int(loc.Get("endColumn").Int()),
		},
		Raw: r.Get("code").String(),
	}
}

func exprInfo(r gjson.Result) cxx.ExprInfo {
	return cxx.ExprInfo{
		NodeInfo: nodeInfo(r),
		ExprType: decodeTypeRef(r.Get("type")),
	}
}

func decodeTypeRef(r gjson.Result) *cxx.TypeRef {
	if !r.Exists() {
		return nil
	}
	tr := &cxx.TypeRef{
		Spelling: r.Get("spelling").String(),
		Problem:  r.Get("problem").Bool(),
	}
	if pointee := r.Get("pointee"); pointee.Exists() {
		tr.Pointee = decodeTypeRef(pointee)
	}
	return tr
}

func decodeTopLevel(r gjson.Result) cxx.Node {
	switch r.Get("kind").String() {
	case "FunctionDefinition":
		fn := &cxx.FunctionDef{
			NodeInfo:   nodeInfo(r),
			Name:       r.Get("name").String(),
			ReturnType: r.Get("returnType").String(),
		}
		if body := r.Get("body"); body.Exists() {
			fn.Body = decodeCompound(body)
		}
		return fn
	case "RecordDefinition":
		return &cxx.RecordDef{
			NodeInfo:   nodeInfo(r),
			Name:       r.Get("name").String(),
			RecordKind: r.Get("recordKind").String(),
		}
	default:
		return decodeStatement(r)
	}
}

func decodeCompound(r gjson.Result) *cxx.Compound {
	c := &cxx.Compound{NodeInfo: nodeInfo(r)}
	r.Get("statements").ForEach(func(_, stmt gjson.Result) bool {
		c.Statements = append(c.Statements, decodeStatement(stmt))
		return true
	})
	return c
}

func decodeStatement(r gjson.Result) cxx.Node {
	switch r.Get("kind").String() {
	case "CompoundStatement":
		return decodeCompound(r)
	case "DeclarationStatement":
		d := &cxx.DeclarationStmt{NodeInfo: nodeInfo(r)}
		r.Get("declarators").ForEach(func(_, dr gjson.Result) bool {
			d.Declarators = append(d.Declarators, decodeDeclarator(dr))
			return true
		})
		return d
	case "ReturnStatement":
		ret := &cxx.Return{NodeInfo: nodeInfo(r)}
		if v := r.Get("value"); v.Exists() {
			ret.Value = decodeExpression(v)
		}
		return ret
	case "ForStatement":
		f := &cxx.For{NodeInfo: nodeInfo(r)}
		if init := r.Get("initializer"); init.Exists() {
			f.Initializer = decodeStatement(init)
		}
		if cd := r.Get("conditionDecl"); cd.Exists() {
			f.ConditionDecl = decodeDeclarator(cd)
		}
		if cond := r.Get("condition"); cond.Exists() {
			f.Condition = decodeExpression(cond)
		}
		if iter := r.Get("iteration"); iter.Exists() {
			f.Iteration = decodeExpression(iter)
		}
		if body := r.Get("body"); body.Exists() {
			f.Body = decodeStatement(body)
		}
		return f
	default:
		return decodeExpression(r)
	}
}

func decodeDeclarator(r gjson.Result) *cxx.Declarator {
	d := &cxx.Declarator{
		NodeInfo:     nodeInfo(r),
		Name:         r.Get("name").String(),
		TypeSpelling: r.Get("typeSpelling").String(),
		IsArray:      r.Get("isArray").Bool(),
	}
	if init := r.Get("initializer"); init.Exists() {
		d.Initializer = decodeExpression(init)
	}
	return d
}

var basicKinds = map[string]cxx.BasicKind{
	"int":    cxx.BasicInt,
	"float":  cxx.BasicFloat,
	"double": cxx.BasicDouble,
	"char":   cxx.BasicChar,
	"bool":   cxx.BasicBool,
	"string": cxx.BasicString,
}

func decodeExpression(r gjson.Result) cxx.Expression {
	switch kind := r.Get("kind").String(); kind {
	case "Literal":
		return &cxx.Literal{
			ExprInfo: exprInfo(r),
			Basic:    basicKinds[r.Get("basic").String()],
			Value:    r.Get("value").String(),
		}
	case "IdExpression":
		return &cxx.IDExpression{ExprInfo: exprInfo(r), Name: r.Get("name").String()}
	case "UnaryExpression":
		u := &cxx.Unary{
			ExprInfo: exprInfo(r),
			Operator: cxx.UnaryOp(r.Get("operator").Int()),
		}
		if op := r.Get("operand"); op.Exists() {
			u.Operand = decodeExpression(op)
		}
		return u
	case "BinaryExpression":
		b := &cxx.Binary{ExprInfo: exprInfo(r), Operator: r.Get("operator").String()}
		if lhs := r.Get("lhs"); lhs.Exists() {
			b.LHS = decodeExpression(lhs)
		}
		if rhs := r.Get("rhs"); rhs.Exists() {
			b.RHS = decodeExpression(rhs)
		}
		return b
	case "ConditionalExpression":
		c := &cxx.Conditional{ExprInfo: exprInfo(r)}
		if cond := r.Get("condition"); cond.Exists() {
			c.Condition = decodeExpression(cond)
		}
		if pos := r.Get("positive"); pos.Exists() {
			c.Positive = decodeExpression(pos)
		}
		if neg := r.Get("negative"); neg.Exists() {
			c.Negative = decodeExpression(neg)
		}
		return c
	case "FieldReference":
		f := &cxx.FieldReference{
			ExprInfo:  exprInfo(r),
			FieldName: r.Get("fieldName").String(),
			Arrow:     r.Get("arrow").Bool(),
		}
		if base := r.Get("base"); base.Exists() {
			f.Base = decodeExpression(base)
		}
		return f
	case "FunctionCall":
		c := &cxx.Call{ExprInfo: exprInfo(r)}
		if callee := r.Get("callee"); callee.Exists() {
			c.Callee = decodeExpression(callee)
		}
		r.Get("arguments").ForEach(func(_, arg gjson.Result) bool {
			c.Arguments = append(c.Arguments, decodeExpression(arg))
			return true
		})
		return c
	case "CastExpression":
		c := &cxx.Cast{
			ExprInfo:     exprInfo(r),
			Operator:     int(r.Get("operator").Int()),
			DeclaredType: r.Get("declaredType").String(),
		}
		if op := r.Get("operand"); op.Exists() {
			c.Operand = decodeExpression(op)
		}
		return c
	case "NewExpression":
		n := &cxx.New{
			ExprInfo:     exprInfo(r),
			DeclaredType: r.Get("declaredType").String(),
			NamedType:    r.Get("namedType").Bool(),
		}
		if init := r.Get("initializer"); init.Exists() {
			n.Initializer = decodeExpression(init)
		}
		return n
	case "DeleteExpression":
		d := &cxx.Delete{ExprInfo: exprInfo(r)}
		if op := r.Get("operand"); op.Exists() {
			d.Operand = decodeExpression(op)
		}
		return d
	case "InitializerList":
		l := &cxx.InitializerList{ExprInfo: exprInfo(r)}
		r.Get("clauses").ForEach(func(_, clause gjson.Result) bool {
			l.Clauses = append(l.Clauses, decodeExpression(clause))
			return true
		})
		return l
	case "DesignatedInitializer":
		d := &cxx.DesignatedInitializer{ExprInfo: exprInfo(r)}
		r.Get("designators").ForEach(func(_, des gjson.Result) bool {
			d.Designators = append(d.Designators, decodeDesignator(des))
			return true
		})
		if op := r.Get("operand"); op.Exists() {
			d.Operand = decodeExpression(op)
		}
		return d
	case "ArraySubscript":
		a := &cxx.ArraySubscript{ExprInfo: exprInfo(r)}
		if arr := r.Get("array"); arr.Exists() {
			a.Array = decodeExpression(arr)
		}
		if idx := r.Get("index"); idx.Exists() {
			a.Index = decodeExpression(idx)
		}
		return a
	case "TypeIdExpression":
		return &cxx.TypeID{
			ExprInfo: exprInfo(r),
			Operator: int(r.Get("operator").Int()),
			TypeName: r.Get("typeName").String(),
		}
	case "ExpressionList":
		l := &cxx.ExpressionList{ExprInfo: exprInfo(r)}
		r.Get("expressions").ForEach(func(_, e gjson.Result) bool {
			l.Expressions = append(l.Expressions, decodeExpression(e))
			return true
		})
		return l
	case "CompoundStatementExpression":
		c := &cxx.CompoundStatementExpr{ExprInfo: exprInfo(r)}
		if body := r.Get("body"); body.Exists() {
			c.Body = decodeCompound(body)
		}
		return c
	case "TypeConstructor":
		t := &cxx.TypeConstructor{
			ExprInfo:     exprInfo(r),
			DeclaredType: r.Get("declaredType").String(),
		}
		if op := r.Get("operand"); op.Exists() {
			t.Operand = decodeExpression(op)
		}
		return t
	default:
		return &cxx.UnknownExpression{ExprInfo: exprInfo(r), VendorClass: kind}
	}
}

func decodeDesignator(r gjson.Result) cxx.Designator {
	switch r.Get("kind").String() {
	case "field":
		return cxx.FieldDesignator{Name: r.Get("name").String()}
	case "subscript":
		return cxx.SubscriptDesignator{Index: decodeExpression(r.Get("index"))}
	case "range":
		return cxx.RangeDesignator{
			Floor:   decodeExpression(r.Get("floor")),
			Ceiling: decodeExpression(r.Get("ceiling")),
		}
	default:
		return cxx.FieldDesignator{Name: r.Get("name").String()}
	}
}
