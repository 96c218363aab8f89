package frontend

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cpgtools/go-cpg/internal/ctypes"
	"github.com/cpgtools/go-cpg/internal/logging"
	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

// handleLiteral discriminates vendor literals by their basic kind and
// normalizes the value. Integer literals get the full radix/suffix
// treatment; unrecognized shapes fall back to the textual form with
// the vendor type.
func (f *Frontend) handleLiteral(e cxx.Expression) graph.Expression {
	lit := e.(*cxx.Literal)
	loc := location(lit.Loc)

	var value any
	var t *ctypes.Type

	switch lit.Basic {
	case cxx.BasicInt:
		value, t = f.lowerIntegerLiteral(lit.Value, loc)
	case cxx.BasicBool:
		i, _ := strconv.ParseInt(lit.Value, 10, 64)
		value = i == 1
		t = f.registry.CreateFrom("bool", false)
	case cxx.BasicChar:
		i, err := strconv.ParseInt(lit.Value, 10, 32)
		if err != nil {
			logging.Warningf(loc, "cannot read character literal %q, keeping text", lit.Value)
			value = lit.Value
		} else {
			value = rune(i)
		}
		t = f.registry.CreateFrom("char", false)
	case cxx.BasicFloat:
		v, err := strconv.ParseFloat(lit.Value, 32)
		if err != nil {
			logging.Warningf(loc, "cannot read float literal %q, keeping text", lit.Value)
			value = lit.Value
		} else {
			value = float32(v)
		}
		t = f.registry.CreateFrom("float", false)
	case cxx.BasicDouble:
		v, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			logging.Warningf(loc, "cannot read double literal %q, keeping text", lit.Value)
			value = lit.Value
		} else {
			value = v
		}
		t = f.registry.CreateFrom("double", false)
	case cxx.BasicString:
		value = lit.Value
		t = f.typeFrom(lit.ExprType, loc)
		if t.IsUnknown() {
			t = f.registry.CreateFrom("const char*", false)
		}
	default:
		logging.Debugf(loc, "unclassified literal %q, keeping text with vendor type", lit.Value)
		value = lit.Value
		t = f.typeFrom(lit.ExprType, loc)
	}

	node := graph.NewLiteral(loc, lit.Raw, value, t)
	f.record(node)
	return node
}

// maxInt32Value / minInt32Value bound the unsuffixed "int" bucket.
var (
	maxInt32Value = big.NewInt(math.MaxInt32)
	minInt32Value = big.NewInt(math.MinInt32)
)

// lowerIntegerLiteral parses an integer spelling: the longest
// trailing run of u/l characters (at most three) is the suffix, the
// remainder selects the radix (0b binary, 0x hex, leading 0 octal,
// else decimal), and the suffix picks the type. An unsuffixed value
// that does not fit a signed 64-bit value stays a big integer typed
// unsigned long long; an l/ll-suffixed one stays a big integer but
// keeps its long/long long type.
func (f *Frontend) lowerIntegerLiteral(spelling string, loc graph.Location) (any, *ctypes.Type) {
	s := strings.ToLower(strings.ReplaceAll(spelling, "'", ""))

	n := 0
	for n < 3 && n < len(s) {
		c := s[len(s)-1-n]
		if c != 'u' && c != 'l' {
			break
		}
		n++
	}
	suffix := s[len(s)-n:]
	digits := s[:len(s)-n]

	base := 10
	switch {
	case strings.HasPrefix(digits, "0b"):
		base = 2
		digits = digits[2:]
	case strings.HasPrefix(digits, "0x"):
		base = 16
		digits = digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base = 8
		digits = digits[1:]
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		logging.Warningf(loc, "cannot parse integer literal %q, keeping text", spelling)
		return spelling, f.registry.Unknown()
	}

	switch {
	case strings.Contains(suffix, "u"):
		// Unsigned literals keep their full width.
		if suffix == "ul" {
			return v, f.registry.CreateFrom("unsigned long", false)
		}
		return v, f.registry.CreateFrom("unsigned long long", false)

	case suffix == "ll" || suffix == "l":
		name := "long long"
		if suffix == "l" {
			name = "long"
		}
		if v.IsInt64() {
			return v.Int64(), f.registry.CreateFrom(name, false)
		}
		logging.Warningf(loc, "literal %q does not fit a signed 64-bit value, interpreting as unsigned", spelling)
		return v, f.registry.CreateFrom(name, false)

	default:
		if v.IsInt64() && v.Cmp(minInt32Value) >= 0 && v.Cmp(maxInt32Value) <= 0 {
			return v.Int64(), f.registry.CreateFrom("int", false)
		}
		if v.IsInt64() {
			return v.Int64(), f.registry.CreateFrom("long", false)
		}
		logging.Warningf(loc, "literal %q does not fit a signed 64-bit value, widening to unsigned long long", spelling)
		return v, f.registry.CreateFrom("unsigned long long", false)
	}
}
