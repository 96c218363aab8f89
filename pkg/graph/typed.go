package graph

import (
	"github.com/cpgtools/go-cpg/internal/ctypes"
)

// TypeListener receives notifications when a publisher's declared
// type or possible-subtype set changes. Typed nodes are themselves
// listeners, which allows cyclic subscriber graphs.
type TypeListener interface {
	// TypeChanged is invoked after src's declared type changed.
	// root is the epoch token of the running cascade; oldType is the
	// type src held before the change.
	TypeChanged(src TypedNode, root TypedNode, oldType *ctypes.Type)

	// PossibleSubTypesChanged is invoked after src's possible-subtype
	// set changed.
	PossibleSubTypesChanged(src TypedNode, root TypedNode, oldSubTypes []*ctypes.Type)
}

// TypedNode is a graph node that carries a declared type and a set of
// possible subtypes, and takes part in the type-propagation bus.
type TypedNode interface {
	Node
	TypeListener

	// Type returns the declared type; never nil, Unknown stands for
	// "not yet known".
	Type() *ctypes.Type

	// SetType updates the declared type and synchronously notifies
	// all registered listeners. root is the originator of the cascade;
	// pass nil when starting a new one.
	SetType(t *ctypes.Type, root TypedNode)

	// PossibleSubTypes returns the possible-subtype set.
	PossibleSubTypes() []*ctypes.Type

	// SetPossibleSubTypes unions the given types into the set and
	// notifies listeners when it grew.
	SetPossibleSubTypes(s []*ctypes.Type, root TypedNode)

	// PropagationType is the type the node advertises to subscribers.
	// It defaults to Type; cast-like expressions override it with
	// their declared target.
	PropagationType() *ctypes.Type

	// RegisterTypeListener subscribes l to future changes.
	RegisterTypeListener(l TypeListener)

	// UnregisterTypeListener removes l; unknown listeners are ignored.
	UnregisterTypeListener(l TypeListener)

	// TypeListeners returns a snapshot of the current subscribers.
	TypeListeners() []TypeListener

	typed() *TypedBase
}

// TypedBase implements the propagation bus state for a typed node.
// The self reference is installed by the factory so that overridden
// methods (PropagationType, TypeChanged) dispatch on the outer node.
type TypedBase struct {
	self             TypedNode
	typ              *ctypes.Type
	possibleSubTypes []*ctypes.Type
	listeners        []TypeListener
	activeType       map[TypedNode]bool
	activeSubTypes   map[TypedNode]bool
}

func (tb *TypedBase) typed() *TypedBase { return tb }

func (tb *TypedBase) initTyped(self TypedNode) {
	tb.self = self
	tb.typ = ctypes.UnknownType
	tb.activeType = make(map[TypedNode]bool)
	tb.activeSubTypes = make(map[TypedNode]bool)
}

// Type returns the declared type.
func (tb *TypedBase) Type() *ctypes.Type { return tb.typ }

// PropagationType advertises the declared type by default.
func (tb *TypedBase) PropagationType() *ctypes.Type { return tb.typ }

// PossibleSubTypes returns a snapshot of the possible-subtype set.
func (tb *TypedBase) PossibleSubTypes() []*ctypes.Type {
	out := make([]*ctypes.Type, len(tb.possibleSubTypes))
	copy(out, tb.possibleSubTypes)
	return out
}

// RegisterTypeListener subscribes l; duplicates are ignored.
func (tb *TypedBase) RegisterTypeListener(l TypeListener) {
	if l == nil {
		return
	}
	for _, existing := range tb.listeners {
		if existing == l {
			return
		}
	}
	tb.listeners = append(tb.listeners, l)
}

// UnregisterTypeListener removes l from the subscriber set.
func (tb *TypedBase) UnregisterTypeListener(l TypeListener) {
	for i, existing := range tb.listeners {
		if existing == l {
			tb.listeners = append(tb.listeners[:i], tb.listeners[i+1:]...)
			return
		}
	}
}

// TypeListeners returns a snapshot of the subscriber set. Notification
// loops iterate over this snapshot, so listeners may unregister from
// within a callback.
func (tb *TypedBase) TypeListeners() []TypeListener {
	out := make([]TypeListener, len(tb.listeners))
	copy(out, tb.listeners)
	return out
}

// SetType updates the declared type and notifies subscribers.
// The update is idempotent: setting a structurally equal type with
// the same origin does not notify. A node already on the cascade for
// the given root refuses re-entry, which bounds cyclic listener
// graphs.
func (tb *TypedBase) SetType(t *ctypes.Type, root TypedNode) {
	if t == nil {
		return
	}
	if root == nil {
		root = tb.self
	}
	if tb.activeType[root] {
		return
	}
	old := tb.typ
	if old == t {
		return
	}
	if old != nil && old.Equals(t) {
		// Same shape, possibly a different origin tag: keep the new
		// tag but do not restart the cascade.
		tb.typ = t
		return
	}
	tb.typ = t

	tb.activeType[root] = true
	defer delete(tb.activeType, root)
	for _, l := range tb.TypeListeners() {
		l.TypeChanged(tb.self, root, old)
	}
}

// SetPossibleSubTypes unions s into the set and notifies when the set
// actually grew. The same epoch guard as SetType applies.
func (tb *TypedBase) SetPossibleSubTypes(s []*ctypes.Type, root TypedNode) {
	if root == nil {
		root = tb.self
	}
	if tb.activeSubTypes[root] {
		return
	}
	old := tb.PossibleSubTypes()
	grew := false
	for _, t := range s {
		if t == nil || t.IsUnknown() {
			continue
		}
		present := false
		for _, have := range tb.possibleSubTypes {
			if have == t {
				present = true
				break
			}
		}
		if !present {
			tb.possibleSubTypes = append(tb.possibleSubTypes, t)
			grew = true
		}
	}
	if !grew {
		return
	}

	tb.activeSubTypes[root] = true
	defer delete(tb.activeSubTypes, root)
	for _, l := range tb.TypeListeners() {
		l.PossibleSubTypesChanged(tb.self, root, old)
	}
}

// TypeChanged implements the default subscriber policy: ignore the
// change when the own type is known and the publisher's propagation
// type did not actually move; otherwise adopt the propagation type,
// stamped as data-flow provenance.
func (tb *TypedBase) TypeChanged(src TypedNode, root TypedNode, oldType *ctypes.Type) {
	prop := src.PropagationType()
	if prop == nil || prop.IsUnknown() {
		return
	}
	if tb.typ != nil && !tb.typ.IsUnknown() && prop == oldType {
		return
	}
	tb.self.SetType(prop.WithOrigin(ctypes.OriginDataflow), root)
}

// PossibleSubTypesChanged unions the publisher's set into the own set
// and republishes.
func (tb *TypedBase) PossibleSubTypesChanged(src TypedNode, root TypedNode, oldSubTypes []*ctypes.Type) {
	tb.self.SetPossibleSubTypes(src.PossibleSubTypes(), root)
}
