package frontend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpgtools/go-cpg/internal/ctypes"
	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

func declarator(name, typeSpelling string, isArray bool, init cxx.Expression) *cxx.Declarator {
	return &cxx.Declarator{
		NodeInfo:     cxx.NodeInfo{Loc: testLoc(1), Raw: name},
		Name:         name,
		TypeSpelling: typeSpelling,
		IsArray:      isArray,
		Initializer:  init,
	}
}

func initList(typeSpelling string, clauses ...cxx.Expression) *cxx.InitializerList {
	return &cxx.InitializerList{
		ExprInfo: cxx.ExprInfo{
			NodeInfo: cxx.NodeInfo{Loc: testLoc(1), Raw: "{...}"},
			ExprType: &cxx.TypeRef{Spelling: typeSpelling},
		},
		Clauses: clauses,
	}
}

// ============================================================================
// Declaration Binding Tests
// ============================================================================

// A declared type wins over the initializer's literal type.
func TestDeclaredTypeWins(t *testing.T) {
	f := New(nil, nil, nil)
	v := f.lowerDeclarator(declarator("x", "int", false, intLit("0xFFul")))

	require.Equal(t, "int", v.Type().String())
	require.Equal(t, ctypes.OriginDeclared, v.Type().Origin())

	lit := v.Initializer().(*graph.Literal)
	require.Equal(t, "unsigned long", lit.Type().String())
	value, ok := lit.BigValue()
	require.True(t, ok)
	require.EqualValues(t, 255, value.Int64())
}

// An auto declaration takes its type from the initializer through
// propagation.
func TestAutoTypeFromInitializer(t *testing.T) {
	f := New(nil, nil, nil)
	v := f.lowerDeclarator(declarator("y", "auto", false, intLit("0xFFFFFFFFFFFFFFFFull")))

	require.Equal(t, "unsigned long long", v.Type().String())
	require.Equal(t, ctypes.OriginDataflow, v.Type().Origin())
}

// A brace initializer for a non-array object strips the array layer
// the list carries.
func TestBraceInitializerStripsArrayLayer(t *testing.T) {
	f := New(nil, nil, nil)
	v := f.lowerDeclarator(declarator("a", "", false,
		initList("A[]", intLit("1"), intLit("2"))))

	require.Equal(t, "A", v.Type().String())
}

// An array declarator keeps the list's array type.
func TestBraceInitializerKeepsArrayType(t *testing.T) {
	f := New(nil, nil, nil)
	v := f.lowerDeclarator(declarator("arr", "int[]", true,
		initList("int[]", intLit("1"), intLit("2"), intLit("3"))))

	require.Equal(t, "int[]", v.Type().String())
	require.True(t, v.IsArray)
}

func TestInitializerDFGEdge(t *testing.T) {
	f := New(nil, nil, nil)
	v := f.lowerDeclarator(declarator("x", "int", false, intLit("1")))

	e := v.Initializer()
	require.NotNil(t, e)
	next := e.NextDFG()
	require.Len(t, next, 1, "exactly one DFG edge initializer -> variable")
	require.Equal(t, graph.Node(v), next[0])

	v.SetInitializer(nil)
	require.Empty(t, e.NextDFG(), "DFG edge must vanish with the initializer")
}

// ============================================================================
// Translation Unit Tests
// ============================================================================

func testTU() *cxx.TranslationUnit {
	return &cxx.TranslationUnit{
		NodeInfo: cxx.NodeInfo{Loc: testLoc(1), Raw: ""},
		File:     "test.cpp",
		Declarations: []cxx.Node{
			&cxx.RecordDef{
				NodeInfo:   cxx.NodeInfo{Loc: testLoc(1), Raw: "struct A {};"},
				Name:       "A",
				RecordKind: "struct",
			},
			&cxx.FunctionDef{
				NodeInfo:   cxx.NodeInfo{Loc: testLoc(3), Raw: "int main() {...}"},
				Name:       "main",
				ReturnType: "int",
				Body: &cxx.Compound{
					NodeInfo: cxx.NodeInfo{Loc: testLoc(3), Raw: "{...}"},
					Statements: []cxx.Node{
						&cxx.DeclarationStmt{
							NodeInfo:    cxx.NodeInfo{Loc: testLoc(4), Raw: "int x = 42;"},
							Declarators: []*cxx.Declarator{declarator("x", "int", false, intLit("42"))},
						},
						&cxx.For{
							NodeInfo: cxx.NodeInfo{Loc: testLoc(5), Raw: "for (...) {...}"},
							Initializer: &cxx.DeclarationStmt{
								NodeInfo:    cxx.NodeInfo{Loc: testLoc(5), Raw: "int i = 0;"},
								Declarators: []*cxx.Declarator{declarator("i", "int", false, intLit("0"))},
							},
							Condition: &cxx.Binary{
								ExprInfo: exprInfo("i < 10", "bool"),
								Operator: "<",
								LHS:      ident("i", "int"),
								RHS:      intLit("10"),
							},
							Iteration: &cxx.Unary{
								ExprInfo: exprInfo("i++", "int"),
								Operator: cxx.OpPostfixIncrement,
								Operand:  ident("i", "int"),
							},
							Body: &cxx.Compound{
								NodeInfo: cxx.NodeInfo{Loc: testLoc(6), Raw: "{}"},
							},
						},
						&cxx.Return{
							NodeInfo: cxx.NodeInfo{Loc: testLoc(7), Raw: "return x;"},
							Value:    ident("x", "int"),
						},
					},
				},
			},
		},
	}
}

func TestLowerTranslationUnit(t *testing.T) {
	f := New(nil, nil, nil)
	root, nodes := f.Lower(testTU())

	require.NotNil(t, root)
	require.NotEmpty(t, nodes)
	require.Len(t, root.Declarations(), 2)

	fn, ok := root.Declarations()[1].(*graph.FunctionDeclaration)
	require.True(t, ok)
	require.Equal(t, "main", fn.NodeName())
	require.Equal(t, "int", fn.Type().String())
	require.NotNil(t, fn.Body())
}

// TestASTIsForest checks that AST edges form a forest rooted at the
// translation unit: one parent per node, no cycles, consistent
// parent/child bookkeeping.
func TestASTIsForest(t *testing.T) {
	f := New(nil, nil, nil)
	root, nodes := f.Lower(testTU())

	for _, n := range nodes {
		// Walking up must terminate at the root well within the node
		// count.
		steps := 0
		for cur := graph.Node(n); cur != nil; cur = cur.ASTParent() {
			steps++
			require.LessOrEqual(t, steps, len(nodes), "AST parent chain contains a cycle at %v", n)
		}

		// Parent/child bookkeeping must agree.
		if p := n.ASTParent(); p != nil {
			found := 0
			for _, c := range p.ASTChildren() {
				if c == graph.Node(n) {
					found++
				}
			}
			require.Equal(t, 1, found, "node must appear exactly once among its parent's children")
		} else {
			require.Equal(t, graph.Node(root), graph.Node(n), "only the translation unit may be parentless")
		}
	}
}

func TestReferencesResolveToDeclarations(t *testing.T) {
	f := New(nil, nil, nil)
	_, nodes := f.Lower(testTU())

	var resolved int
	for _, n := range nodes {
		if ref, ok := n.(*graph.DeclaredReferenceExpression); ok && ref.Refers != nil {
			resolved++
			if v, ok := ref.Refers.(*graph.VariableDeclaration); ok {
				require.Contains(t, []string{"x", "i"}, v.NodeName())
			}
		}
	}
	require.NotZero(t, resolved, "uses of declared variables must resolve")
}

func TestForStatementSlots(t *testing.T) {
	f := New(nil, nil, nil)
	_, nodes := f.Lower(testTU())

	var forStmt *graph.ForStatement
	for _, n := range nodes {
		if fs, ok := n.(*graph.ForStatement); ok {
			forStmt = fs
		}
	}
	require.NotNil(t, forStmt)
	require.NotNil(t, forStmt.Initializer())
	require.NotNil(t, forStmt.Condition())
	require.NotNil(t, forStmt.Iteration())
	require.NotNil(t, forStmt.Body())
	require.Nil(t, forStmt.ConditionDeclaration())
}
