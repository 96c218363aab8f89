// Package frontend lowers a vendor C/C++ AST into the code property
// graph. Lowering is a single-threaded depth-first traversal; no
// input aborts a translation unit, abnormal shapes degrade to Unknown
// types and generic nodes.
package frontend

import (
	"github.com/cpgtools/go-cpg/internal/ctypes"
	"github.com/cpgtools/go-cpg/internal/logging"
	"github.com/cpgtools/go-cpg/pkg/cxx"
	"github.com/cpgtools/go-cpg/pkg/graph"
)

// BindingResolver resolves a vendor-AST name to a previously created
// declaration node. Returning nil means "no binding".
type BindingResolver interface {
	Resolve(name string) graph.Declaration
}

// DefiningResolver is a BindingResolver that also accepts new
// bindings as the frontend creates declarations.
type DefiningResolver interface {
	BindingResolver
	Define(name string, d graph.Declaration)
}

// ScopeManager yields the fully-qualified name prefix of the current
// scope, used when constructing free-call names.
type ScopeManager interface {
	CurrentPrefix() string
}

// MapResolver is a flat name table; it serves as the default binding
// resolver and is populated by the frontend itself.
type MapResolver struct {
	bindings map[string]graph.Declaration
}

// NewMapResolver creates an empty resolver.
func NewMapResolver() *MapResolver {
	return &MapResolver{bindings: make(map[string]graph.Declaration)}
}

// Resolve returns the declaration bound to name, or nil.
func (m *MapResolver) Resolve(name string) graph.Declaration {
	return m.bindings[name]
}

// Define binds name to d, replacing any previous binding.
func (m *MapResolver) Define(name string, d graph.Declaration) {
	m.bindings[name] = d
}

type noopScope struct{}

func (noopScope) CurrentPrefix() string { return "" }

// handler lowers one vendor expression class.
type handler func(*Frontend, cxx.Expression) graph.Expression

// Frontend lowers vendor translation units. It owns the type registry
// for the lifetime of a run and keeps the node table of the unit
// currently being lowered.
type Frontend struct {
	registry *ctypes.Registry
	resolver BindingResolver
	scope    ScopeManager
	handlers map[cxx.Kind]handler
	nodes    []graph.Node
	nextID   int64
}

// New creates a frontend. A nil registry, resolver or scope falls
// back to a fresh registry, a MapResolver and an empty scope prefix.
func New(registry *ctypes.Registry, resolver BindingResolver, scope ScopeManager) *Frontend {
	if registry == nil {
		registry = ctypes.NewRegistry()
	}
	if resolver == nil {
		resolver = NewMapResolver()
	}
	if scope == nil {
		scope = noopScope{}
	}
	f := &Frontend{
		registry: registry,
		resolver: resolver,
		scope:    scope,
	}
	f.handlers = map[cxx.Kind]handler{
		cxx.KindLiteral:               (*Frontend).handleLiteral,
		cxx.KindIDExpression:          (*Frontend).handleIDExpression,
		cxx.KindUnary:                 (*Frontend).handleUnary,
		cxx.KindBinary:                (*Frontend).handleBinary,
		cxx.KindConditional:           (*Frontend).handleConditional,
		cxx.KindFieldReference:        (*Frontend).handleFieldReference,
		cxx.KindCall:                  (*Frontend).handleCall,
		cxx.KindCast:                  (*Frontend).handleCast,
		cxx.KindNew:                   (*Frontend).handleNew,
		cxx.KindDelete:                (*Frontend).handleDelete,
		cxx.KindInitializerList:       (*Frontend).handleInitializerList,
		cxx.KindDesignatedInitializer: (*Frontend).handleDesignatedInitializer,
		cxx.KindArraySubscript:        (*Frontend).handleArraySubscript,
		cxx.KindTypeID:                (*Frontend).handleTypeID,
		cxx.KindExpressionList:        (*Frontend).handleExpressionList,
		cxx.KindCompoundStatementExpr: (*Frontend).handleCompoundStatementExpr,
		cxx.KindTypeConstructor:       (*Frontend).handleTypeConstructor,
	}
	return f
}

// Registry returns the type registry the frontend lowers against.
func (f *Frontend) Registry() *ctypes.Registry { return f.registry }

// Lower lowers one vendor translation unit and returns the root node
// together with the full node table. It never fails; abnormal input
// degrades per the placeholder policy.
func (f *Frontend) Lower(tu *cxx.TranslationUnit) (*graph.TranslationUnitDeclaration, []graph.Node) {
	f.nodes = nil
	f.nextID = 0

	root := graph.NewTranslationUnitDeclaration(location(tu.Loc), tu.Raw, tu.File)
	f.record(root)

	for _, d := range tu.Declarations {
		switch n := d.(type) {
		case *cxx.RecordDef:
			rec := graph.NewRecordDeclaration(location(n.Loc), n.Raw, n.Name, n.RecordKind)
			f.record(rec)
			root.AddDeclaration(rec)
			f.define(n.Name, rec)
		case *cxx.FunctionDef:
			root.AddDeclaration(f.lowerFunction(n))
		case *cxx.DeclarationStmt:
			for _, dcl := range n.Declarators {
				v := f.lowerDeclarator(dcl)
				root.AddDeclaration(v)
			}
		default:
			logging.Errorf(location(nodeLoc(d)), "unknown top-level declaration kind %s", d.Kind())
		}
	}
	return root, f.nodes
}

// LowerExpression dispatches one vendor expression to its handler.
// Unrecognized kinds produce a generic expression node and an ERROR
// log entry keyed to the source location.
func (f *Frontend) LowerExpression(e cxx.Expression) graph.Expression {
	if e == nil {
		return nil
	}
	if h, ok := f.handlers[e.Kind()]; ok {
		return h(f, e)
	}
	loc := location(e.Location())
	if u, ok := e.(*cxx.UnknownExpression); ok {
		logging.Errorf(loc, "no handler for vendor node class %q", u.VendorClass)
	} else {
		logging.Errorf(loc, "no handler for vendor node kind %s", e.Kind())
	}
	g := graph.NewGenericExpression(loc, e.Code())
	f.record(g)
	return g
}

// record stamps a node's identity and adds it to the node table.
func (f *Frontend) record(n graph.Node) {
	f.nextID++
	n.SetID(f.nextID)
	f.nodes = append(f.nodes, n)
}

// unrecord drops a node from the table again; used for temporary
// callee nodes that are disconnected after call-shape inference.
func (f *Frontend) unrecord(n graph.Node) {
	for i := len(f.nodes) - 1; i >= 0; i-- {
		if f.nodes[i] == n {
			f.nodes = append(f.nodes[:i], f.nodes[i+1:]...)
			return
		}
	}
}

func (f *Frontend) define(name string, d graph.Declaration) {
	if def, ok := f.resolver.(DefiningResolver); ok && name != "" {
		def.Define(name, d)
	}
}

// typeFrom canonicalizes a vendor type reference. Problem types
// degrade to Unknown with a DEBUG entry.
func (f *Frontend) typeFrom(tr *cxx.TypeRef, loc graph.Location) *ctypes.Type {
	if tr == nil {
		return f.registry.Unknown()
	}
	if tr.Problem {
		logging.Debugf(loc, "vendor reported a problem type, continuing with Unknown")
		return f.registry.Unknown()
	}
	return f.registry.CreateFrom(tr.Spelling, false)
}

func location(l cxx.Location) graph.Location {
	return graph.Location{
		File:        l.File,
		StartLine:   l.StartLine,
		StartColumn: l.StartColumn,
		EndLine:     l.EndLine,
		EndColumn:   l.EndColumn,
	}
}

func nodeLoc(n cxx.Node) cxx.Location {
	if n == nil {
		return cxx.Location{}
	}
	return n.Location()
}
