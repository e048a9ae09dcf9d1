package graph

// Ref identifies a target node by owning file path and target name. Names are
// unique per file but not globally; two targets with the same name in
// different files are distinct nodes. External and unresolved leaves use the
// referenced path (possibly empty) and the raw invocation text as the name.
type Ref struct {
	Path string
	Name string
}

// String renders the identity as path:name, or just the name for nodes
// without an owning file.
func (r Ref) String() string {
	if r.Path == "" {
		return r.Name
	}
	return r.Path + ":" + r.Name
}

// Less orders refs by path then name.
func (r Ref) Less(other Ref) bool {
	if r.Path != other.Path {
		return r.Path < other.Path
	}
	return r.Name < other.Name
}

// NodeKind classifies a call graph node.
type NodeKind int

const (
	// NodeTarget is a target defined in a discovered Makefile.
	NodeTarget NodeKind = iota
	// NodeExternal is a target in a makefile referenced explicitly but not discovered.
	NodeExternal
	// NodeUnresolved is a reference that could not be attributed to any file.
	NodeUnresolved
)

// Node is a vertex of the call graph.
type Node struct {
	Ref    Ref
	Kind   NodeKind
	Label  string  // Raw invocation text for external/unresolved leaves
	Target *Target // nil for leaves
}

// Edge is a directed call from one target identity to another. Multiplicity
// is preserved; a caller invoking the same callee from several recipe lines
// yields several edges.
type Edge struct {
	From  Ref
	To    Ref
	Label string // Relative path of the callee file when caller and callee files differ
	Line  int    // Calling line, for traceability
}

// CallGraph is a directed multigraph over target identities. Node order is
// insertion order, which the analyzer keeps deterministic.
type CallGraph struct {
	nodes map[Ref]*Node
	order []Ref
	edges map[Ref][]Edge
	count int
}

// NewCallGraph creates an empty call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{
		nodes: make(map[Ref]*Node),
		edges: make(map[Ref][]Edge),
	}
}

// AddNode registers a node unless its identity is already present and returns it.
func (g *CallGraph) AddNode(node *Node) *Node {
	if existing, ok := g.nodes[node.Ref]; ok {
		// A defined target wins over a previously synthesized leaf.
		if existing.Kind != NodeTarget && node.Kind == NodeTarget {
			existing.Kind = NodeTarget
			existing.Target = node.Target
			existing.Label = ""
		}
		return existing
	}
	g.nodes[node.Ref] = node
	g.order = append(g.order, node.Ref)
	return node
}

// Node returns the node with the given identity, or nil.
func (g *CallGraph) Node(ref Ref) *Node {
	return g.nodes[ref]
}

// Nodes returns all nodes in insertion order.
func (g *CallGraph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.order))
	for _, ref := range g.order {
		result = append(result, g.nodes[ref])
	}
	return result
}

// AddEdge appends a directed edge. Both endpoints must already be registered.
func (g *CallGraph) AddEdge(edge Edge) {
	g.edges[edge.From] = append(g.edges[edge.From], edge)
	g.count++
}

// Outgoing returns the outgoing edges of a node in insertion order.
func (g *CallGraph) Outgoing(ref Ref) []Edge {
	return g.edges[ref]
}

// Edges returns every edge grouped by caller, callers in node insertion order.
func (g *CallGraph) Edges() []Edge {
	result := make([]Edge, 0, g.count)
	for _, ref := range g.order {
		result = append(result, g.edges[ref]...)
	}
	return result
}

// NodeCount returns the number of nodes.
func (g *CallGraph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges including parallel duplicates.
func (g *CallGraph) EdgeCount() int {
	return g.count
}
