package analyzer

import (
	"github.com/viant/makegraph/inspector/graph"
)

// Renderer serializes a report's call graph to a textual diagram format.
type Renderer interface {
	Render(report *Report) (string, error)
}

// NewRenderer returns the renderer for a format selector. FormatBoth and
// FormatSummary are composed by the caller; they have no single renderer.
func NewRenderer(format graph.Format, highlightCycles bool) Renderer {
	switch format {
	case graph.FormatMermaid:
		return &MermaidRenderer{HighlightCycles: highlightCycles}
	default:
		return &DotRenderer{HighlightCycles: highlightCycles}
	}
}

// displayNames assigns each node the shortest unambiguous identifier: the
// bare name, qualified with the owning file when the name collides across
// nodes. Unresolved leaves take part in the collision count, so a leaf never
// shares an identifier with a real target. External leaves keep the
// referenced path and name.
func displayNames(g *graph.CallGraph) map[graph.Ref]string {
	counts := make(map[string]int)
	for _, node := range g.Nodes() {
		if node.Kind != graph.NodeExternal {
			counts[node.Ref.Name]++
		}
	}
	names := make(map[graph.Ref]string, g.NodeCount())
	for _, node := range g.Nodes() {
		switch node.Kind {
		case graph.NodeExternal:
			if node.Ref.Name == "" {
				names[node.Ref] = node.Ref.Path
			} else {
				names[node.Ref] = node.Ref.String()
			}
		default:
			if counts[node.Ref.Name] > 1 && node.Ref.Path != "" {
				names[node.Ref] = node.Ref.String()
			} else {
				names[node.Ref] = node.Ref.Name
			}
		}
	}
	return names
}

// renderedEdge is a display edge with parallel duplicates collapsed.
type renderedEdge struct {
	edge  graph.Edge
	count int
}

// collapseEdges collapses parallel edges for display while the underlying
// graph keeps true multiplicity; the collapse is surfaced via the count.
// First-occurrence order is preserved for diff-stable output.
func collapseEdges(g *graph.CallGraph) []renderedEdge {
	type key struct {
		from, to graph.Ref
		label    string
	}
	index := make(map[key]int)
	var result []renderedEdge
	for _, edge := range g.Edges() {
		k := key{from: edge.From, to: edge.To, label: edge.Label}
		if at, ok := index[k]; ok {
			result[at].count++
			continue
		}
		index[k] = len(result)
		result = append(result, renderedEdge{edge: edge, count: 1})
	}
	return result
}
