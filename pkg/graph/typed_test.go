package graph

import (
	"testing"

	"github.com/cpgtools/go-cpg/internal/ctypes"
)

// countingListener records notifications without propagating them.
type countingListener struct {
	typeChanges    int
	subTypeChanges int
	onTypeChanged  func(src TypedNode, root TypedNode, oldType *ctypes.Type)
}

func (c *countingListener) TypeChanged(src TypedNode, root TypedNode, oldType *ctypes.Type) {
	c.typeChanges++
	if c.onTypeChanged != nil {
		c.onTypeChanged(src, root, oldType)
	}
}

func (c *countingListener) PossibleSubTypesChanged(src TypedNode, root TypedNode, oldSubTypes []*ctypes.Type) {
	c.subTypeChanges++
}

// ============================================================================
// Propagation Bus Tests
// ============================================================================

func TestSetTypeNotifiesListeners(t *testing.T) {
	r := ctypes.NewRegistry()
	node := NewLiteral(loc(1), "0", int64(0), nil)
	listener := &countingListener{}
	node.RegisterTypeListener(listener)

	node.SetType(r.CreateFrom("int", false), nil)

	if listener.typeChanges != 1 {
		t.Errorf("typeChanges = %d, want 1", listener.typeChanges)
	}
	if node.Type().String() != "int" {
		t.Errorf("Type() = %v, want int", node.Type())
	}
}

func TestSetTypeIsIdempotent(t *testing.T) {
	r := ctypes.NewRegistry()
	node := NewLiteral(loc(1), "0", int64(0), nil)
	listener := &countingListener{}
	node.RegisterTypeListener(listener)

	intType := r.CreateFrom("int", false)
	node.SetType(intType, nil)
	node.SetType(intType, nil)

	if listener.typeChanges != 1 {
		t.Errorf("typeChanges = %d after two identical SetType calls, want 1", listener.typeChanges)
	}
}

func TestSetTypeNilIsIgnored(t *testing.T) {
	node := NewLiteral(loc(1), "0", int64(0), nil)
	node.SetType(nil, nil)

	if !node.Type().IsUnknown() {
		t.Errorf("Type() = %v after SetType(nil), want Unknown", node.Type())
	}
}

func TestCyclicPropagationTerminates(t *testing.T) {
	r := ctypes.NewRegistry()
	a := NewDeclaredReferenceExpression(loc(1), "a", "a")
	b := NewDeclaredReferenceExpression(loc(2), "b", "b")

	// a and b subscribe to each other.
	a.RegisterTypeListener(b)
	b.RegisterTypeListener(a)

	a.SetType(r.CreateFrom("int", false), nil)

	if !a.Type().Equals(b.Type()) {
		t.Errorf("cycle did not converge: a=%v b=%v", a.Type(), b.Type())
	}
	if b.Type().Origin() != ctypes.OriginDataflow {
		t.Errorf("b's type origin = %v, want DATAFLOW", b.Type().Origin())
	}
}

func TestUnregisterDuringNotification(t *testing.T) {
	r := ctypes.NewRegistry()
	node := NewLiteral(loc(1), "0", int64(0), nil)

	second := &countingListener{}
	first := &countingListener{}
	first.onTypeChanged = func(src TypedNode, root TypedNode, oldType *ctypes.Type) {
		src.UnregisterTypeListener(second)
	}
	node.RegisterTypeListener(first)
	node.RegisterTypeListener(second)

	// Must not panic and must still deliver to the snapshot.
	node.SetType(r.CreateFrom("int", false), nil)

	if first.typeChanges != 1 || second.typeChanges != 1 {
		t.Errorf("snapshot delivery: first=%d second=%d, want 1/1", first.typeChanges, second.typeChanges)
	}

	node.SetType(r.CreateFrom("long", false), nil)
	if second.typeChanges != 1 {
		t.Errorf("unregistered listener was notified again")
	}
}

func TestDefaultPolicyNoRegression(t *testing.T) {
	r := ctypes.NewRegistry()
	src := NewLiteral(loc(1), "0", int64(0), nil)
	dst := NewDeclaredReferenceExpression(loc(2), "x", "x")

	dst.SetType(r.CreateFrom("int", false), nil)
	src.SetType(r.CreateFrom("long", false), nil)
	src.RegisterTypeListener(dst)

	// Replaying the current type: dst's type is known and src did not
	// actually move, so dst must keep its type.
	dst.TypeChanged(src, dst, src.PropagationType())
	if dst.Type().String() != "int" {
		t.Errorf("Type() = %v after replay, want int", dst.Type())
	}

	// An actual change overrides.
	src.SetType(r.CreateFrom("unsigned long", false), nil)
	if dst.Type().String() != "unsigned long" {
		t.Errorf("Type() = %v after real change, want unsigned long", dst.Type())
	}
	if dst.Type().Origin() != ctypes.OriginDataflow {
		t.Errorf("origin = %v, want DATAFLOW", dst.Type().Origin())
	}
}

func TestPossibleSubTypesUnion(t *testing.T) {
	r := ctypes.NewRegistry()
	src := NewDeclaredReferenceExpression(loc(1), "p", "p")
	dst := NewDeclaredReferenceExpression(loc(2), "q", "q")
	src.RegisterTypeListener(dst)

	intType := r.CreateFrom("int", false)
	longType := r.CreateFrom("long", false)

	src.SetPossibleSubTypes([]*ctypes.Type{intType}, nil)
	src.SetPossibleSubTypes([]*ctypes.Type{intType, longType}, nil)
	src.SetPossibleSubTypes([]*ctypes.Type{longType}, nil) // no growth, no publish

	got := dst.PossibleSubTypes()
	if len(got) != 2 {
		t.Fatalf("len(PossibleSubTypes()) = %d, want 2", len(got))
	}
}

func TestCastPropagationType(t *testing.T) {
	r := ctypes.NewRegistry()
	cast := NewCastExpression(loc(1), "(MyObj) x", CastCStyle)

	target := r.CreateFrom("MyObj", false)
	cast.SetCastType(target)

	if cast.PropagationType() != target {
		t.Errorf("PropagationType() = %v, want the declared cast target", cast.PropagationType())
	}
}
