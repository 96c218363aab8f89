package ctypes

import (
	"strings"
	"sync"
)

// primitives is the set of builtin arithmetic and void spellings.
var primitives = map[string]bool{
	"bool":               true,
	"char":               true,
	"signed char":        true,
	"unsigned char":      true,
	"short":              true,
	"short int":          true,
	"unsigned short":     true,
	"int":                true,
	"signed int":         true,
	"unsigned":           true,
	"unsigned int":       true,
	"long":               true,
	"long int":           true,
	"unsigned long":      true,
	"long long":          true,
	"long long int":      true,
	"unsigned long long": true,
	"float":              true,
	"double":             true,
	"long double":        true,
	"wchar_t":            true,
	"char8_t":            true,
	"char16_t":           true,
	"char32_t":           true,
	"void":               true,
	"std::size_t":        true,
	"size_t":             true,
	"std::ptrdiff_t":     true,
	"ptrdiff_t":          true,
}

// Registry canonicalizes type spellings and interns the results.
// Lookups and inserts are guarded by a mutex; the registry sits off
// the hot loop, so contention is not a concern even if translation
// units are later lowered in parallel.
type Registry struct {
	mu       sync.Mutex
	interned map[string]*Type
	aliases  map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		interned: make(map[string]*Type),
		aliases:  make(map[string]string),
	}
}

// Unknown returns the Unknown sentinel.
func (r *Registry) Unknown() *Type { return UnknownType }

// DefineAlias registers a type alias. Aliases are only applied when
// CreateFrom is called with resolveAlias set.
func (r *Registry) DefineAlias(name, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[name] = target
}

// CreateFrom canonicalizes a textual type spelling. Empty spellings
// and spellings with an unmatched "]" yield the Unknown sentinel; any
// other root name is interned as given. Parsing never fails.
func (r *Registry) CreateFrom(spelling string, resolveAlias bool) *Type {
	name, quals, layers := parseSpelling(spelling)
	if name == "" {
		return UnknownType
	}
	if resolveAlias {
		r.mu.Lock()
		if target, ok := r.aliases[name]; ok {
			name = target
		}
		r.mu.Unlock()
	}
	return r.intern(name, quals, layers, OriginDeclared)
}

// intern returns the canonical instance for the given shape, creating
// it on first use.
func (r *Registry) intern(name string, quals Qualifiers, layers []LayerKind, origin Origin) *Type {
	t := &Type{
		registry:  r,
		name:      name,
		quals:     quals,
		layers:    append([]LayerKind(nil), layers...),
		origin:    origin,
		primitive: primitives[name],
	}
	key := t.String() + "|" + origin.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.interned[key]; ok {
		return existing
	}
	r.interned[key] = t
	return t
}

// Spellings returns the canonical spelling of every interned type.
func (r *Registry) Spellings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.interned))
	seen := make(map[string]bool, len(r.interned))
	for _, t := range r.interned {
		s := t.String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// parseSpelling splits a spelling into root name, qualifiers and
// indirection layers. It understands trailing "*", "&" and "[...]"
// declarator pieces and leading cv-qualifier words.
func parseSpelling(spelling string) (string, Qualifiers, []LayerKind) {
	s := strings.TrimSpace(spelling)
	var quals Qualifiers
	var layers []LayerKind

	// Peel declarator suffixes from the right.
suffixes:
	for {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasSuffix(s, "*"):
			layers = append([]LayerKind{LayerPointer}, layers...)
			s = s[:len(s)-1]
		case strings.HasSuffix(s, "&"):
			layers = append([]LayerKind{LayerReference}, layers...)
			s = s[:len(s)-1]
		case strings.HasSuffix(s, "]"):
			open := strings.LastIndex(s, "[")
			if open < 0 {
				return "", quals, nil
			}
			layers = append([]LayerKind{LayerArray}, layers...)
			s = s[:open]
		default:
			break suffixes
		}
	}

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		switch w {
		case "const":
			quals.Const = true
		case "volatile":
			quals.Volatile = true
		case "restrict", "__restrict":
			quals.Restrict = true
		default:
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " "), quals, layers
}
