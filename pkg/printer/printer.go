// Package printer renders a lowered graph as deterministic text, for
// the CLI and for snapshot tests.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cpgtools/go-cpg/pkg/graph"
)

// Print renders the AST below root, one node per line, with type and
// edge annotations.
func Print(root graph.Node) string {
	var sb strings.Builder
	printNode(&sb, root, 0)
	return sb.String()
}

// PrintTable renders the node table sorted by identity, with the
// data-flow and reference edges of every node.
func PrintTable(nodes []graph.Node) string {
	sorted := make([]graph.Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	var sb strings.Builder
	for _, n := range sorted {
		sb.WriteString(describe(n))
		sb.WriteString("\n")
	}
	return sb.String()
}

func printNode(sb *strings.Builder, n graph.Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(describe(n))
	sb.WriteString("\n")
	for _, c := range n.ASTChildren() {
		printNode(sb, c, depth+1)
	}
}

func describe(n graph.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] %s", n.ID(), label(n))
	if name := n.NodeName(); name != "" {
		fmt.Fprintf(&sb, " %q", name)
	}
	if tn, ok := n.(graph.TypedNode); ok {
		fmt.Fprintf(&sb, " type=%s(%s)", tn.Type(), tn.Type().Origin())
	}
	if lit, ok := n.(*graph.Literal); ok {
		fmt.Fprintf(&sb, " value=%v", lit.Value)
	}
	if ref, ok := n.(*graph.DeclaredReferenceExpression); ok && ref.Refers != nil {
		fmt.Fprintf(&sb, " refersTo=[%d]", ref.Refers.ID())
	}
	if next := n.NextDFG(); len(next) > 0 {
		ids := make([]int64, len(next))
		for i, d := range next {
			ids[i] = d.ID()
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		fmt.Fprintf(&sb, " dfg->%v", ids)
	}
	return sb.String()
}

func label(n graph.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*graph.")
}
