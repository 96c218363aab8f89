// Package cxx is the vendor AST surface consumed by the frontend.
// The host parser produces these nodes; the frontend only reads them.
// Dispatch happens over the Kind enum, so the frontend never reflects
// over vendor classes.
package cxx

// Kind enumerates the vendor node classes the frontend knows.
type Kind int

const (
	KindUnknown Kind = iota
	KindLiteral
	KindIDExpression
	KindUnary
	KindBinary
	KindConditional
	KindFieldReference
	KindCall
	KindCast
	KindNew
	KindDelete
	KindInitializerList
	KindDesignatedInitializer
	KindArraySubscript
	KindTypeID
	KindExpressionList
	KindCompoundStatementExpr
	KindTypeConstructor
	KindCompound
	KindDeclaration
	KindReturn
	KindFor
	KindFunction
	KindRecord
	KindTranslationUnit
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindLiteral:               "Literal",
	KindIDExpression:          "IdExpression",
	KindUnary:                 "UnaryExpression",
	KindBinary:                "BinaryExpression",
	KindConditional:           "ConditionalExpression",
	KindFieldReference:        "FieldReference",
	KindCall:                  "FunctionCall",
	KindCast:                  "CastExpression",
	KindNew:                   "NewExpression",
	KindDelete:                "DeleteExpression",
	KindInitializerList:       "InitializerList",
	KindDesignatedInitializer: "DesignatedInitializer",
	KindArraySubscript:        "ArraySubscript",
	KindTypeID:                "TypeIdExpression",
	KindExpressionList:        "ExpressionList",
	KindCompoundStatementExpr: "CompoundStatementExpression",
	KindTypeConstructor:       "TypeConstructor",
	KindCompound:              "CompoundStatement",
	KindDeclaration:           "DeclarationStatement",
	KindReturn:                "ReturnStatement",
	KindFor:                   "ForStatement",
	KindFunction:              "FunctionDefinition",
	KindRecord:                "RecordDefinition",
	KindTranslationUnit:       "TranslationUnit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Location is a source span reported by the vendor parser.
type Location struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// TypeRef is the vendor's view of an expression or declarator type.
// Problem marks a type the vendor parser failed to resolve; Pointee
// is set for pointer types.
type TypeRef struct {
	Spelling string
	Problem  bool
	Pointee  *TypeRef
}

// Node is the base interface of all vendor nodes.
type Node interface {
	Kind() Kind
	Location() Location
	Code() string
}

// Expression is a vendor node that has an expression type.
type Expression interface {
	Node
	Type() *TypeRef
}

// NodeInfo is the common header embedded in every vendor node.
type NodeInfo struct {
	Loc Location
	Raw string
}

func (n NodeInfo) Location() Location { return n.Loc }
func (n NodeInfo) Code() string       { return n.Raw }

// ExprInfo extends NodeInfo with the vendor-reported expression type.
type ExprInfo struct {
	NodeInfo
	ExprType *TypeRef
}

func (e ExprInfo) Type() *TypeRef { return e.ExprType }
