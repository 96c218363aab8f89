// Package ctypes models C/C++ types for the graph frontend.
// Types are canonical value objects produced by a Registry; two
// canonicalizations of the same spelling return the same *Type, so
// identity comparison is sufficient for full equality.
package ctypes

import (
	"strings"
)

// Origin records where a type assignment came from.
type Origin int

const (
	// OriginDeclared marks a type taken from an explicit declaration.
	OriginDeclared Origin = iota

	// OriginDataflow marks a type learned through type propagation.
	OriginDataflow

	// OriginGuessed marks a type the frontend inferred heuristically.
	OriginGuessed

	// OriginUnresolved marks a type that could not be resolved.
	OriginUnresolved
)

func (o Origin) String() string {
	switch o {
	case OriginDeclared:
		return "DECLARED"
	case OriginDataflow:
		return "DATAFLOW"
	case OriginGuessed:
		return "GUESSED"
	case OriginUnresolved:
		return "UNRESOLVED"
	default:
		return "UNKNOWN_ORIGIN"
	}
}

// LayerKind classifies one indirection layer of a type.
type LayerKind int

const (
	// LayerPointer is a pointer layer written with "*".
	LayerPointer LayerKind = iota

	// LayerArray is a pointer layer that originated from an array
	// declarator or an initializer list.
	LayerArray

	// LayerReference is a C++ reference layer.
	LayerReference
)

func (l LayerKind) suffix() string {
	switch l {
	case LayerPointer:
		return "*"
	case LayerArray:
		return "[]"
	case LayerReference:
		return "&"
	default:
		return "?"
	}
}

// PointerOrigin selects the layer kind pushed by Type.PointerTo.
type PointerOrigin int

const (
	// PointerOriginPointer pushes a plain pointer layer.
	PointerOriginPointer PointerOrigin = iota

	// PointerOriginArray pushes an array-flavoured pointer layer.
	PointerOriginArray
)

// Qualifiers is the set of C/C++ cv-qualifiers carried by a type.
type Qualifiers struct {
	Const    bool
	Volatile bool
	Restrict bool
}

func (q Qualifiers) prefix() string {
	var sb strings.Builder
	if q.Const {
		sb.WriteString("const ")
	}
	if q.Volatile {
		sb.WriteString("volatile ")
	}
	if q.Restrict {
		sb.WriteString("restrict ")
	}
	return sb.String()
}

// Type is a canonical, interned C/C++ type.
// Instances are immutable; derived types (Dereference, PointerTo,
// WithOrigin) go back through the owning registry so the interning
// guarantee is preserved.
type Type struct {
	registry  *Registry
	name      string
	quals     Qualifiers
	layers    []LayerKind
	origin    Origin
	unknown   bool
	primitive bool
}

// UnknownType is the process-wide "not yet known" sentinel. Every
// registry hands out this exact instance, so identity comparison
// against it is safe across registries.
var UnknownType = &Type{name: "UNKNOWN", unknown: true, origin: OriginUnresolved}

// Name returns the root spelling without qualifiers or layers.
func (t *Type) Name() string { return t.name }

// Origin returns the provenance tag of the type.
func (t *Type) Origin() Origin { return t.origin }

// Qualifiers returns the cv-qualifier set.
func (t *Type) Qualifiers() Qualifiers { return t.quals }

// Layers returns the indirection layers, innermost first.
func (t *Type) Layers() []LayerKind {
	out := make([]LayerKind, len(t.layers))
	copy(out, t.layers)
	return out
}

// IsUnknown reports whether t is the Unknown sentinel.
func (t *Type) IsUnknown() bool { return t == nil || t.unknown }

// IsPrimitive reports whether t is a builtin arithmetic or void type
// without any indirection layers.
func (t *Type) IsPrimitive() bool {
	return t != nil && t.primitive && len(t.layers) == 0
}

// String renders the canonical spelling: qualifiers, root name, then
// one suffix per layer, innermost first.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(t.quals.prefix())
	sb.WriteString(t.name)
	for _, l := range t.layers {
		sb.WriteString(l.suffix())
	}
	return sb.String()
}

// Equals reports structural equality: same name, qualifiers and
// layers. The origin tag does not participate.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.unknown || other.unknown {
		return t.unknown == other.unknown
	}
	if t.name != other.name || t.quals != other.quals || len(t.layers) != len(other.layers) {
		return false
	}
	for i, l := range t.layers {
		if other.layers[i] != l {
			return false
		}
	}
	return true
}

// Dereference removes the outermost indirection layer. A type without
// layers is returned unchanged; the Unknown sentinel stays Unknown.
func (t *Type) Dereference() *Type {
	if t.IsUnknown() || len(t.layers) == 0 {
		return t
	}
	return t.registry.intern(t.name, t.quals, t.layers[:len(t.layers)-1], t.origin)
}

// PointerTo pushes a pointer layer tagged with the given origin.
func (t *Type) PointerTo(po PointerOrigin) *Type {
	if t.IsUnknown() {
		return t
	}
	layer := LayerPointer
	if po == PointerOriginArray {
		layer = LayerArray
	}
	return t.registry.intern(t.name, t.quals, append(t.Layers(), layer), t.origin)
}

// WithOrigin returns the same structural type carrying the given
// origin tag.
func (t *Type) WithOrigin(o Origin) *Type {
	if t.IsUnknown() || t.origin == o {
		return t
	}
	return t.registry.intern(t.name, t.quals, t.layers, o)
}

// Root returns the layerless form of t.
func (t *Type) Root() *Type {
	if t.IsUnknown() || len(t.layers) == 0 {
		return t
	}
	return t.registry.intern(t.name, t.quals, nil, t.origin)
}
