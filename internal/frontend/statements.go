package frontend

import (
	"github.com/cpgtools/go-cpg/internal/logging"
	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

// ============================================================================
// Statement Lowering
// ============================================================================

// lowerStatement lowers one statement-position vendor node.
// Expressions pass straight through the expression dispatcher, since
// expressions are statements in the graph as well.
func (f *Frontend) lowerStatement(n cxx.Node) graph.Statement {
	switch s := n.(type) {
	case nil:
		return nil
	case *cxx.Compound:
		return f.lowerCompound(s)
	case *cxx.DeclarationStmt:
		return f.lowerDeclarationStmt(s)
	case *cxx.Return:
		ret := graph.NewReturnStatement(location(s.Loc), s.Raw)
		f.record(ret)
		if s.Value != nil {
			ret.SetReturnValue(f.LowerExpression(s.Value))
		}
		return ret
	case *cxx.For:
		return f.lowerFor(s)
	case cxx.Expression:
		return f.LowerExpression(s)
	default:
		logging.Errorf(location(nodeLoc(n)), "unknown statement kind %s", n.Kind())
		return nil
	}
}

func (f *Frontend) lowerCompound(c *cxx.Compound) *graph.CompoundStatement {
	node := graph.NewCompoundStatement(location(c.Loc), c.Raw)
	f.record(node)
	for _, s := range c.Statements {
		node.AddStatement(f.lowerStatement(s))
	}
	return node
}

func (f *Frontend) lowerDeclarationStmt(d *cxx.DeclarationStmt) *graph.DeclarationStatement {
	node := graph.NewDeclarationStatement(location(d.Loc), d.Raw)
	f.record(node)
	for _, dcl := range d.Declarators {
		node.AddDeclaration(f.lowerDeclarator(dcl))
	}
	return node
}

// lowerFor fills the five optional slots of a for loop.
func (f *Frontend) lowerFor(s *cxx.For) *graph.ForStatement {
	node := graph.NewForStatement(location(s.Loc), s.Raw)
	f.record(node)

	if s.Initializer != nil {
		node.SetInitializer(f.lowerStatement(s.Initializer))
	}
	if s.ConditionDecl != nil {
		node.SetConditionDeclaration(f.lowerDeclarator(s.ConditionDecl))
	}
	if s.Condition != nil {
		node.SetCondition(f.LowerExpression(s.Condition))
	}
	if s.Iteration != nil {
		node.SetIteration(f.LowerExpression(s.Iteration))
	}
	if s.Body != nil {
		node.SetBody(f.lowerStatement(s.Body))
	}
	return node
}
