package graph

// Statement is a node that performs an action. Expressions satisfy
// Statement as well, so expression statements need no wrapper.
type Statement interface {
	Node
	statementNode()
}

// StatementBase is the common payload of statement variants.
type StatementBase struct {
	NodeBase
}

func (sb *StatementBase) statementNode() {}

// CompoundStatement is a braced statement block.
type CompoundStatement struct {
	StatementBase
	statements []Statement
}

// Statements returns the block members in source order.
func (c *CompoundStatement) Statements() []Statement {
	out := make([]Statement, len(c.statements))
	copy(out, c.statements)
	return out
}

// AddStatement appends a member and its AST edge.
func (c *CompoundStatement) AddStatement(s Statement) {
	if s == nil {
		return
	}
	c.statements = append(c.statements, s)
	Adopt(c, s)
}

// DeclarationStatement carries declarations appearing in statement
// position.
type DeclarationStatement struct {
	StatementBase
	declarations []Declaration
}

// Declarations returns the declared entities in source order.
func (d *DeclarationStatement) Declarations() []Declaration {
	out := make([]Declaration, len(d.declarations))
	copy(out, d.declarations)
	return out
}

// AddDeclaration appends a declaration and its AST edge.
func (d *DeclarationStatement) AddDeclaration(decl Declaration) {
	if decl == nil {
		return
	}
	d.declarations = append(d.declarations, decl)
	Adopt(d, decl)
}

// ReturnStatement returns from a function, optionally with a value.
type ReturnStatement struct {
	StatementBase
	returnValue Expression
}

// ReturnValue returns the returned expression, nil for a bare return.
func (r *ReturnStatement) ReturnValue() Expression { return r.returnValue }

// SetReturnValue installs the returned expression and its AST edge.
func (r *ReturnStatement) SetReturnValue(e Expression) {
	if r.returnValue != nil {
		Disconnect(r.returnValue)
	}
	r.returnValue = e
	Adopt(r, e)
}

// ForStatement is the classic for loop with its five optional slots:
// initializer statement, condition declaration, condition expression,
// iteration expression and body.
type ForStatement struct {
	StatementBase
	initializer  Statement
	conditionDcl Declaration
	condition    Expression
	iteration    Expression
	body         Statement
}

func (f *ForStatement) Initializer() Statement           { return f.initializer }
func (f *ForStatement) ConditionDeclaration() Declaration { return f.conditionDcl }
func (f *ForStatement) Condition() Expression            { return f.condition }
func (f *ForStatement) Iteration() Expression            { return f.iteration }
func (f *ForStatement) Body() Statement                  { return f.body }

// SetInitializer installs the init statement and its AST edge.
func (f *ForStatement) SetInitializer(s Statement) {
	if f.initializer != nil {
		Disconnect(f.initializer)
	}
	f.initializer = s
	Adopt(f, s)
}

// SetConditionDeclaration installs a C++ condition declaration.
func (f *ForStatement) SetConditionDeclaration(d Declaration) {
	if f.conditionDcl != nil {
		Disconnect(f.conditionDcl)
	}
	f.conditionDcl = d
	Adopt(f, d)
}

// SetCondition installs the condition expression and its AST edge.
func (f *ForStatement) SetCondition(e Expression) {
	if f.condition != nil {
		Disconnect(f.condition)
	}
	f.condition = e
	Adopt(f, e)
}

// SetIteration installs the iteration expression and its AST edge.
func (f *ForStatement) SetIteration(e Expression) {
	if f.iteration != nil {
		Disconnect(f.iteration)
	}
	f.iteration = e
	Adopt(f, e)
}

// SetBody installs the loop body and its AST edge.
func (f *ForStatement) SetBody(s Statement) {
	if f.body != nil {
		Disconnect(f.body)
	}
	f.body = s
	Adopt(f, s)
}
