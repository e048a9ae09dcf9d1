package analyzer

import (
	"fmt"
	"strings"

	"github.com/viant/makegraph/inspector/graph"
)

// DotRenderer serializes the call graph in Graphviz DOT format.
type DotRenderer struct {
	// HighlightCycles styles edges that take part in a detected cycle.
	HighlightCycles bool
}

// Render emits one directed-edge statement per collapsed edge. Every node is
// represented, including external and unresolved leaves; a detected cycle is
// surfaced in the text even when highlighting is off.
func (r *DotRenderer) Render(report *Report) (string, error) {
	names := displayNames(report.Graph)
	cycleEdges := cycleEdgeSet(report.Cycles)

	builder := &strings.Builder{}
	builder.WriteString("digraph makefileCallGraph {\n")
	builder.WriteString("  rankdir=LR;\n")
	builder.WriteString("  node [shape=box, style=rounded];\n")
	builder.WriteString("  labelloc=\"t\";\n")
	fmt.Fprintf(builder, "  label=%s;\n", dotQuote("Makefile call graph\\n"+report.Root))
	builder.WriteString("  // parallel edges are collapsed; an xN label marks call multiplicity\n")
	if len(report.Cycles) > 0 {
		fmt.Fprintf(builder, "  // %d circular dependency chain(s) detected\n", len(report.Cycles))
	}
	builder.WriteString("\n")

	for _, node := range report.Graph.Nodes() {
		id := dotQuote(names[node.Ref])
		switch node.Kind {
		case graph.NodeExternal:
			fmt.Fprintf(builder, "  %s [shape=component, style=dashed];\n", id)
		case graph.NodeUnresolved:
			fmt.Fprintf(builder, "  %s [shape=oval, style=dashed, color=gray];\n", id)
		default:
			fmt.Fprintf(builder, "  %s;\n", id)
		}
	}
	builder.WriteString("\n")

	for _, entry := range collapseEdges(report.Graph) {
		isCycle := r.HighlightCycles && cycleEdges[[2]graph.Ref{entry.edge.From, entry.edge.To}]
		var attrs []string
		if entry.edge.Label != "" {
			attrs = append(attrs, "style=dashed")
			if !isCycle {
				attrs = append(attrs, "color=blue")
			}
		}
		label := entry.edge.Label
		if entry.count > 1 {
			if label != "" {
				label += " "
			}
			label += fmt.Sprintf("x%d", entry.count)
		}
		if label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%s", dotQuote(label)))
		}
		if isCycle {
			attrs = append(attrs, "color=red", "penwidth=2.0")
		}
		fmt.Fprintf(builder, "  %s -> %s", dotQuote(names[entry.edge.From]), dotQuote(names[entry.edge.To]))
		if len(attrs) > 0 {
			fmt.Fprintf(builder, " [%s]", strings.Join(attrs, ", "))
		}
		builder.WriteString(";\n")
	}
	builder.WriteString("}\n")
	return builder.String(), nil
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
