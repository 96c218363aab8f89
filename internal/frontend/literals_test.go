package frontend

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

func testLoc(line int) cxx.Location {
	return cxx.Location{File: "test.cpp", StartLine: line, StartColumn: 1, EndLine: line, EndColumn: 10}
}

func intLit(spelling string) *cxx.Literal {
	return &cxx.Literal{
		ExprInfo: cxx.ExprInfo{
			NodeInfo: cxx.NodeInfo{Loc: testLoc(1), Raw: spelling},
			ExprType: &cxx.TypeRef{Spelling: "int"},
		},
		Basic: cxx.BasicInt,
		Value: spelling,
	}
}

func TestIntegerLiterals(t *testing.T) {
	bigFromString := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		return v
	}

	tests := []struct {
		name     string
		spelling string
		value    any
		typeName string
	}{
		{"decimal", "42", int64(42), "int"},
		{"zero", "0", int64(0), "int"},
		{"binary", "0b101", int64(5), "int"},
		{"hex", "0xFF", int64(255), "int"},
		{"octal", "017", int64(15), "int"},
		{"digit separators", "123'456", int64(123456), "int"},
		{"unsigned long", "0xFFul", big.NewInt(255), "unsigned long"},
		{"unsigned long long", "0xFFull", big.NewInt(255), "unsigned long long"},
		{"bare unsigned", "255u", big.NewInt(255), "unsigned long long"},
		{"long", "42l", int64(42), "long"},
		{"long long", "42ll", int64(42), "long long"},
		{"exceeds int", "2147483648", int64(2147483648), "long"},
		{"max long", "9223372036854775807", int64(9223372036854775807), "long"},
		{"exceeds long", "18446744073709551615", bigFromString("18446744073709551615"), "unsigned long long"},
		{"wide hex", "0xFFFFFFFFFFFFFFFFull", bigFromString("18446744073709551615"), "unsigned long long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(nil, nil, nil)
			node := f.LowerExpression(intLit(tt.spelling))

			lit, ok := node.(*graph.Literal)
			require.True(t, ok, "lowering %q must yield a literal, got %T", tt.spelling, node)
			require.Equal(t, tt.typeName, lit.Type().String())

			switch want := tt.value.(type) {
			case *big.Int:
				got, ok := lit.Value.(*big.Int)
				require.True(t, ok, "value = %T, want *big.Int", lit.Value)
				require.Zero(t, want.Cmp(got), "value = %v, want %v", got, want)
			default:
				require.Equal(t, tt.value, lit.Value)
			}
		})
	}
}

// suffixes maps a lowered type name back to its literal suffix, to
// rebuild a spelling from a (value, typename) pair.
var suffixes = map[string]string{
	"int":                "",
	"long":               "l",
	"long long":          "ll",
	"unsigned long":      "ul",
	"unsigned long long": "ull",
}

// TestIntegerLiteralRoundTrip re-parses the textual form of every
// lowered (value, typename) pair and expects the identical pair back.
func TestIntegerLiteralRoundTrip(t *testing.T) {
	spellings := []string{
		"42", "0", "0b101", "0xFF", "017", "0xFFul", "0xFFull",
		"42l", "42ll", "2147483648", "18446744073709551615",
		"0xFFFFFFFFFFFFFFFFull",
	}

	for _, spelling := range spellings {
		t.Run(spelling, func(t *testing.T) {
			f := New(nil, nil, nil)
			first := f.LowerExpression(intLit(spelling)).(*graph.Literal)

			value, ok := first.BigValue()
			require.True(t, ok)
			rebuilt := fmt.Sprintf("%s%s", value.String(), suffixes[first.Type().String()])

			second := f.LowerExpression(intLit(rebuilt)).(*graph.Literal)
			require.Equal(t, first.Type().String(), second.Type().String())

			secondValue, ok := second.BigValue()
			require.True(t, ok)
			require.Zero(t, value.Cmp(secondValue))
		})
	}
}

func TestOtherLiterals(t *testing.T) {
	lower := func(basic cxx.BasicKind, value, typeSpelling string) *graph.Literal {
		f := New(nil, nil, nil)
		node := f.LowerExpression(&cxx.Literal{
			ExprInfo: cxx.ExprInfo{
				NodeInfo: cxx.NodeInfo{Loc: testLoc(1), Raw: value},
				ExprType: &cxx.TypeRef{Spelling: typeSpelling},
			},
			Basic: basic,
			Value: value,
		})
		lit, ok := node.(*graph.Literal)
		require.True(t, ok)
		return lit
	}

	t.Run("bool true", func(t *testing.T) {
		lit := lower(cxx.BasicBool, "1", "bool")
		require.Equal(t, true, lit.Value)
		require.Equal(t, "bool", lit.Type().String())
	})

	t.Run("bool false", func(t *testing.T) {
		lit := lower(cxx.BasicBool, "0", "bool")
		require.Equal(t, false, lit.Value)
	})

	t.Run("char", func(t *testing.T) {
		lit := lower(cxx.BasicChar, "65", "char")
		require.Equal(t, 'A', lit.Value)
		require.Equal(t, "char", lit.Type().String())
	})

	t.Run("float", func(t *testing.T) {
		lit := lower(cxx.BasicFloat, "3.14", "float")
		require.Equal(t, float32(3.14), lit.Value)
		require.Equal(t, "float", lit.Type().String())
	})

	t.Run("double", func(t *testing.T) {
		lit := lower(cxx.BasicDouble, "3.14", "double")
		require.Equal(t, 3.14, lit.Value)
		require.Equal(t, "double", lit.Type().String())
	})

	t.Run("string", func(t *testing.T) {
		lit := lower(cxx.BasicString, "hello", "const char*")
		require.Equal(t, "hello", lit.Value)
		require.Equal(t, "const char*", lit.Type().String())
	})

	t.Run("unclassified keeps text", func(t *testing.T) {
		lit := lower(cxx.BasicUnspecified, "whatever", "SomeType")
		require.Equal(t, "whatever", lit.Value)
		require.Equal(t, "SomeType", lit.Type().String())
	})
}
