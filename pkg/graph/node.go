// Package graph defines the language-neutral code property graph
// produced by the frontend: declarations, statements and expressions
// connected by AST containment, data-flow and reference edges, plus
// the type-propagation bus that keeps typed nodes in agreement.
package graph

import "fmt"

// Location is a source span: file, start and end line/column.
type Location struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// String renders the location as file:line:column for log prefixes.
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.StartLine, l.StartColumn)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartColumn)
}

// Node is the base interface for all graph nodes.
// Every node carries a stable identity, a source location, the raw
// source fragment it was lowered from, and a name.
type Node interface {
	// ID returns the node's stable identity within its translation unit.
	ID() int64

	// NodeName returns the node's name (identifier, operator spelling,
	// type name, ...); may be empty.
	NodeName() string

	// Code returns the raw source fragment the node was lowered from.
	Code() string

	// Location returns the source span of the node.
	Location() Location

	// ASTParent returns the containing node, or nil for a root.
	ASTParent() Node

	// ASTChildren returns the contained nodes in attachment order.
	ASTChildren() []Node

	// PrevDFG returns the data-flow predecessors of the node.
	PrevDFG() []Node

	// NextDFG returns the data-flow successors of the node.
	NextDFG() []Node

	// SetID stamps the node's identity; the frontend assigns IDs when
	// recording nodes into the translation unit's node table.
	SetID(id int64)

	base() *NodeBase
}

// NodeBase carries the common header shared by every graph node.
type NodeBase struct {
	name        string
	code        string
	loc         Location
	id          int64
	astParent   Node
	astChildren []Node
	prevDFG     []Node
	nextDFG     []Node
}

func (nb *NodeBase) base() *NodeBase { return nb }

func (nb *NodeBase) ID() int64          { return nb.id }
func (nb *NodeBase) NodeName() string   { return nb.name }
func (nb *NodeBase) Code() string       { return nb.code }
func (nb *NodeBase) Location() Location { return nb.loc }
func (nb *NodeBase) ASTParent() Node    { return nb.astParent }

func (nb *NodeBase) ASTChildren() []Node {
	out := make([]Node, len(nb.astChildren))
	copy(out, nb.astChildren)
	return out
}

func (nb *NodeBase) PrevDFG() []Node {
	out := make([]Node, len(nb.prevDFG))
	copy(out, nb.prevDFG)
	return out
}

func (nb *NodeBase) NextDFG() []Node {
	out := make([]Node, len(nb.nextDFG))
	copy(out, nb.nextDFG)
	return out
}

func (nb *NodeBase) SetID(id int64) { nb.id = id }

// SetNodeName overwrites the node's name.
func (nb *NodeBase) SetNodeName(name string) { nb.name = name }

// Adopt attaches child below parent with an AST edge. A child that
// already has a parent is moved; adopting nil is a no-op. The AST
// edge set stays a forest: each node has at most one parent.
func Adopt(parent, child Node) {
	if parent == nil || child == nil || parent == child {
		return
	}
	cb := child.base()
	if cb.astParent != nil {
		Disconnect(child)
	}
	pb := parent.base()
	pb.astChildren = append(pb.astChildren, child)
	cb.astParent = parent
}

// Disconnect removes the AST edge between child and its parent, if
// any. The child keeps its own subtree.
func Disconnect(child Node) {
	if child == nil {
		return
	}
	cb := child.base()
	parent := cb.astParent
	if parent == nil {
		return
	}
	pb := parent.base()
	for i, c := range pb.astChildren {
		if c == child {
			pb.astChildren = append(pb.astChildren[:i], pb.astChildren[i+1:]...)
			break
		}
	}
	cb.astParent = nil
}

// AddDFG records a data-flow edge from -> to on both endpoints.
// Adding an existing edge is a no-op.
func AddDFG(from, to Node) {
	if from == nil || to == nil {
		return
	}
	fb := from.base()
	for _, n := range fb.nextDFG {
		if n == to {
			return
		}
	}
	fb.nextDFG = append(fb.nextDFG, to)
	tb := to.base()
	tb.prevDFG = append(tb.prevDFG, from)
}

// RemoveDFG deletes the data-flow edge from -> to, if present.
func RemoveDFG(from, to Node) {
	if from == nil || to == nil {
		return
	}
	fb := from.base()
	for i, n := range fb.nextDFG {
		if n == to {
			fb.nextDFG = append(fb.nextDFG[:i], fb.nextDFG[i+1:]...)
			break
		}
	}
	tb := to.base()
	for i, n := range tb.prevDFG {
		if n == from {
			tb.prevDFG = append(tb.prevDFG[:i], tb.prevDFG[i+1:]...)
			break
		}
	}
}
