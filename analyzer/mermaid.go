package analyzer

import (
	"fmt"
	"strings"

	"github.com/viant/makegraph/inspector/graph"
)

// MermaidRenderer serializes the call graph as Mermaid flowchart markup,
// suitable for embedding in a document.
type MermaidRenderer struct {
	// HighlightCycles styles edges that take part in a detected cycle.
	HighlightCycles bool
}

// Render emits the same semantic content as the DOT renderer: every node
// including leaves, directed edges with cross-file labels, and cycle
// surfacing in the text.
func (r *MermaidRenderer) Render(report *Report) (string, error) {
	names := displayNames(report.Graph)
	cycleEdges := cycleEdgeSet(report.Cycles)
	ids := mermaidIDs(report.Graph, names)

	builder := &strings.Builder{}
	builder.WriteString("flowchart LR\n")
	builder.WriteString("  %% parallel edges are collapsed; an xN label marks call multiplicity\n")
	if len(report.Cycles) > 0 {
		fmt.Fprintf(builder, "  %%%% %d circular dependency chain(s) detected\n", len(report.Cycles))
	}

	for _, node := range report.Graph.Nodes() {
		shape := [2]string{"[", "]"}
		switch node.Kind {
		case graph.NodeExternal:
			shape = [2]string{"[[", "]]"}
		case graph.NodeUnresolved:
			shape = [2]string{"([", "])"}
		}
		fmt.Fprintf(builder, "  %s%s\"%s\"%s\n", ids[node.Ref], shape[0], mermaidEscape(names[node.Ref]), shape[1])
	}

	var cycleLinks []int
	for index, entry := range collapseEdges(report.Graph) {
		arrow := "-->"
		if entry.edge.Label != "" {
			arrow = "-.->"
		}
		label := entry.edge.Label
		if entry.count > 1 {
			if label != "" {
				label += " "
			}
			label += fmt.Sprintf("x%d", entry.count)
		}
		if label != "" {
			arrow = fmt.Sprintf("%s|\"%s\"|", arrow, mermaidEscape(label))
		}
		fmt.Fprintf(builder, "  %s %s %s\n", ids[entry.edge.From], arrow, ids[entry.edge.To])
		if r.HighlightCycles && cycleEdges[[2]graph.Ref{entry.edge.From, entry.edge.To}] {
			cycleLinks = append(cycleLinks, index)
		}
	}
	for _, index := range cycleLinks {
		fmt.Fprintf(builder, "  linkStyle %d stroke:#ff0000,stroke-width:2px\n", index)
	}
	return builder.String(), nil
}

// mermaidIDs derives unique node identifiers from display names.
func mermaidIDs(g *graph.CallGraph, names map[graph.Ref]string) map[graph.Ref]string {
	taken := make(map[string]bool)
	ids := make(map[graph.Ref]string, g.NodeCount())
	for _, node := range g.Nodes() {
		id := sanitizeID(names[node.Ref])
		for suffix := 2; taken[id]; suffix++ {
			id = fmt.Sprintf("%s_%d", sanitizeID(names[node.Ref]), suffix)
		}
		taken[id] = true
		ids[node.Ref] = id
	}
	return ids
}

func sanitizeID(name string) string {
	var builder strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		default:
			builder.WriteByte('_')
		}
	}
	if builder.Len() == 0 {
		return "n"
	}
	return builder.String()
}

func mermaidEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `#quot;`)
}
