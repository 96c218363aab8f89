package frontend

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/cpgtools/go-cpg/pkg/cxx/cxxjson"
	"github.com/cpgtools/go-cpg/pkg/printer"
)

// fixtureJSON is a vendor AST dump covering declarations with
// initializers (one of them a new-expression), a call and a cast in
// one translation unit.
const fixtureJSON = `{
  "kind": "TranslationUnit",
  "file": "fixture.cpp",
  "loc": {"file": "fixture.cpp", "startLine": 1, "startColumn": 1, "endLine": 9, "endColumn": 1},
  "declarations": [
    {
      "kind": "RecordDefinition",
      "loc": {"file": "fixture.cpp", "startLine": 1, "startColumn": 1, "endLine": 1, "endColumn": 12},
      "code": "struct A {};",
      "name": "A",
      "recordKind": "struct"
    },
    {
      "kind": "FunctionDefinition",
      "loc": {"file": "fixture.cpp", "startLine": 3, "startColumn": 1, "endLine": 9, "endColumn": 1},
      "code": "int main() { ... }",
      "name": "main",
      "returnType": "int",
      "body": {
        "kind": "CompoundStatement",
        "loc": {"file": "fixture.cpp", "startLine": 3, "startColumn": 12, "endLine": 9, "endColumn": 1},
        "code": "{ ... }",
        "statements": [
          {
            "kind": "DeclarationStatement",
            "loc": {"file": "fixture.cpp", "startLine": 4, "startColumn": 3, "endLine": 4, "endColumn": 20},
            "code": "int x = 0xFFul;",
            "declarators": [
              {
                "name": "x",
                "typeSpelling": "int",
                "loc": {"file": "fixture.cpp", "startLine": 4, "startColumn": 7, "endLine": 4, "endColumn": 19},
                "code": "x = 0xFFul",
                "initializer": {
                  "kind": "Literal",
                  "basic": "int",
                  "value": "0xFFul",
                  "code": "0xFFul",
                  "loc": {"file": "fixture.cpp", "startLine": 4, "startColumn": 11, "endLine": 4, "endColumn": 17},
                  "type": {"spelling": "int"}
                }
              }
            ]
          },
          {
            "kind": "DeclarationStatement",
            "loc": {"file": "fixture.cpp", "startLine": 5, "startColumn": 3, "endLine": 5, "endColumn": 22},
            "code": "A* p = new A();",
            "declarators": [
              {
                "name": "p",
                "typeSpelling": "A*",
                "loc": {"file": "fixture.cpp", "startLine": 5, "startColumn": 6, "endLine": 5, "endColumn": 21},
                "code": "p = new A()",
                "initializer": {
                  "kind": "NewExpression",
                  "declaredType": "A",
                  "namedType": true,
                  "code": "new A()",
                  "loc": {"file": "fixture.cpp", "startLine": 5, "startColumn": 10, "endLine": 5, "endColumn": 21},
                  "type": {"spelling": "A*"}
                }
              }
            ]
          },
          {
            "kind": "FunctionCall",
            "loc": {"file": "fixture.cpp", "startLine": 6, "startColumn": 3, "endLine": 6, "endColumn": 18},
            "code": "printf(\"%d\", x)",
            "type": {"spelling": "int"},
            "callee": {
              "kind": "IdExpression",
              "name": "printf",
              "code": "printf",
              "loc": {"file": "fixture.cpp", "startLine": 6, "startColumn": 3, "endLine": 6, "endColumn": 9}
            },
            "arguments": [
              {
                "kind": "Literal",
                "basic": "string",
                "value": "%d",
                "code": "\"%d\"",
                "loc": {"file": "fixture.cpp", "startLine": 6, "startColumn": 10, "endLine": 6, "endColumn": 14},
                "type": {"spelling": "const char*"}
              },
              {
                "kind": "IdExpression",
                "name": "x",
                "code": "x",
                "loc": {"file": "fixture.cpp", "startLine": 6, "startColumn": 16, "endLine": 6, "endColumn": 17},
                "type": {"spelling": "int"}
              }
            ]
          },
          {
            "kind": "ReturnStatement",
            "loc": {"file": "fixture.cpp", "startLine": 8, "startColumn": 3, "endLine": 8, "endColumn": 22},
            "code": "return (int) 3.14;",
            "value": {
              "kind": "CastExpression",
              "operator": 4,
              "declaredType": "int",
              "code": "(int) 3.14",
              "loc": {"file": "fixture.cpp", "startLine": 8, "startColumn": 10, "endLine": 8, "endColumn": 21},
              "type": {"spelling": "int"},
              "operand": {
                "kind": "Literal",
                "basic": "double",
                "value": "3.14",
                "code": "3.14",
                "loc": {"file": "fixture.cpp", "startLine": 8, "startColumn": 16, "endLine": 8, "endColumn": 20},
                "type": {"spelling": "double"}
              }
            }
          }
        ]
      }
    }
  ]
}`

func TestFixtureSnapshot(t *testing.T) {
	tu, err := cxxjson.Decode([]byte(fixtureJSON))
	require.NoError(t, err)

	f := New(nil, nil, nil)
	root, nodes := f.Lower(tu)

	snaps.MatchSnapshot(t, printer.Print(root))
	snaps.MatchSnapshot(t, printer.PrintTable(nodes))
}
