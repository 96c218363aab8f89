package cxxjson

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cpgtools/go-cpg/pkg/cxx"
)

func TestDecodeRejectsNonTranslationUnit(t *testing.T) {
	if _, err := Decode([]byte(`{"kind": "Literal"}`)); err == nil {
		t.Errorf("Decode must reject a non-TranslationUnit root")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Errorf("Decode must reject invalid JSON")
	}
}

func TestDecodeExpressionTree(t *testing.T) {
	input := `{
	  "kind": "TranslationUnit",
	  "file": "t.cpp",
	  "loc": {"file": "t.cpp", "startLine": 1, "startColumn": 1, "endLine": 1, "endColumn": 20},
	  "declarations": [
	    {
	      "kind": "DeclarationStatement",
	      "loc": {"file": "t.cpp", "startLine": 1, "startColumn": 1, "endLine": 1, "endColumn": 20},
	      "code": "int x = 1 + 2;",
	      "declarators": [
	        {
	          "name": "x",
	          "typeSpelling": "int",
	          "loc": {"file": "t.cpp", "startLine": 1, "startColumn": 5, "endLine": 1, "endColumn": 19},
	          "code": "x = 1 + 2",
	          "initializer": {
	            "kind": "BinaryExpression",
	            "operator": "+",
	            "code": "1 + 2",
	            "loc": {"file": "t.cpp", "startLine": 1, "startColumn": 9, "endLine": 1, "endColumn": 14},
	            "type": {"spelling": "int"},
	            "lhs": {
	              "kind": "Literal", "basic": "int", "value": "1", "code": "1",
	              "loc": {"file": "t.cpp", "startLine": 1, "startColumn": 9, "endLine": 1, "endColumn": 10},
	              "type": {"spelling": "int"}
	            },
	            "rhs": {
	              "kind": "Literal", "basic": "int", "value": "2", "code": "2",
	              "loc": {"file": "t.cpp", "startLine": 1, "startColumn": 13, "endLine": 1, "endColumn": 14},
	              "type": {"spelling": "int"}
	            }
	          }
	        }
	      ]
	    }
	  ]
	}`

	got, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	tloc := func(startCol, endCol int) cxx.Location {
		return cxx.Location{File: "t.cpp", StartLine: 1, StartColumn: startCol, EndLine: 1, EndColumn: endCol}
	}
	intType := &cxx.TypeRef{Spelling: "int"}

	want := &cxx.TranslationUnit{
		NodeInfo: cxx.NodeInfo{Loc: tloc(1, 20)},
		File:     "t.cpp",
		Declarations: []cxx.Node{
			&cxx.DeclarationStmt{
				NodeInfo: cxx.NodeInfo{Loc: tloc(1, 20), Raw: "int x = 1 + 2;"},
				Declarators: []*cxx.Declarator{
					{
						NodeInfo:     cxx.NodeInfo{Loc: tloc(5, 19), Raw: "x = 1 + 2"},
						Name:         "x",
						TypeSpelling: "int",
						Initializer: &cxx.Binary{
							ExprInfo: cxx.ExprInfo{
								NodeInfo: cxx.NodeInfo{Loc: tloc(9, 14), Raw: "1 + 2"},
								ExprType: intType,
							},
							Operator: "+",
							LHS: &cxx.Literal{
								ExprInfo: cxx.ExprInfo{
									NodeInfo: cxx.NodeInfo{Loc: tloc(9, 10), Raw: "1"},
									ExprType: intType,
								},
								Basic: cxx.BasicInt,
								Value: "1",
							},
							RHS: &cxx.Literal{
								ExprInfo: cxx.ExprInfo{
									NodeInfo: cxx.NodeInfo{Loc: tloc(13, 14), Raw: "2"},
									ExprType: intType,
								},
								Basic: cxx.BasicInt,
								Value: "2",
							},
						},
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	input := `{
	  "kind": "TranslationUnit",
	  "file": "t.cpp",
	  "declarations": [
	    {
	      "kind": "DeclarationStatement",
	      "declarators": [
	        {
	          "name": "x",
	          "typeSpelling": "int",
	          "initializer": {"kind": "GnuVectorExpression", "code": "__v"}
	        }
	      ]
	    }
	  ]
	}`

	tu, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	stmt := tu.Declarations[0].(*cxx.DeclarationStmt)
	unknown, ok := stmt.Declarators[0].Initializer.(*cxx.UnknownExpression)
	if !ok {
		t.Fatalf("unknown kind must decode to UnknownExpression, got %T", stmt.Declarators[0].Initializer)
	}
	if unknown.VendorClass != "GnuVectorExpression" {
		t.Errorf("VendorClass = %q, want GnuVectorExpression", unknown.VendorClass)
	}
}
