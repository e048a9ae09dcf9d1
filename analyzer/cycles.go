package analyzer

import (
	"sort"

	"github.com/viant/makegraph/inspector/graph"
)

// DetectCycles finds every distinct elementary cycle in the call graph.
// Strongly connected components are computed first (Tarjan) to localize the
// search; elementary cycles are then enumerated inside each nontrivial
// component with Johnson's blocked-set circuit search. Cycles are
// canonicalized to start at their smallest identity and deduplicated, so a
// mutual recursion reports one cycle, not two rotations.
func DetectCycles(g *graph.CallGraph) []graph.Cycle {
	adjacency := buildAdjacency(g)
	var cycles []graph.Cycle
	for _, component := range stronglyConnected(g, adjacency) {
		if !nontrivial(component, adjacency) {
			continue
		}
		cycles = append(cycles, circuits(component, adjacency)...)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Key() < cycles[j].Key() })
	return cycles
}

// buildAdjacency collapses edge multiplicity into sorted neighbor sets: a
// recipe calling the same target twice is one potential cycle edge, not two
// cycles.
func buildAdjacency(g *graph.CallGraph) map[graph.Ref][]graph.Ref {
	adjacency := make(map[graph.Ref][]graph.Ref, g.NodeCount())
	seen := make(map[graph.Ref]map[graph.Ref]bool)
	for _, edge := range g.Edges() {
		if seen[edge.From] == nil {
			seen[edge.From] = make(map[graph.Ref]bool)
		}
		if seen[edge.From][edge.To] {
			continue
		}
		seen[edge.From][edge.To] = true
		adjacency[edge.From] = append(adjacency[edge.From], edge.To)
	}
	for from := range adjacency {
		neighbors := adjacency[from]
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].Less(neighbors[j]) })
	}
	return adjacency
}

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// stronglyConnected runs Tarjan's algorithm over the graph in node insertion
// order, returning components as sorted identity slices.
func stronglyConnected(g *graph.CallGraph, adjacency map[graph.Ref][]graph.Ref) [][]graph.Ref {
	state := make(map[graph.Ref]*tarjanState, g.NodeCount())
	var stack []graph.Ref
	counter := 0
	var components [][]graph.Ref

	var strongconnect func(v graph.Ref)
	strongconnect = func(v graph.Ref) {
		state[v] = &tarjanState{index: counter, lowlink: counter, onStack: true}
		counter++
		stack = append(stack, v)

		for _, w := range adjacency[v] {
			if _, visited := state[w]; !visited {
				strongconnect(w)
				if state[w].lowlink < state[v].lowlink {
					state[v].lowlink = state[w].lowlink
				}
			} else if state[w].onStack {
				if state[w].index < state[v].lowlink {
					state[v].lowlink = state[w].index
				}
			}
		}

		if state[v].lowlink == state[v].index {
			var members []graph.Ref
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				if w == v {
					break
				}
			}
			sort.Slice(members, func(i, j int) bool { return members[i].Less(members[j]) })
			components = append(components, members)
		}
	}

	for _, node := range g.Nodes() {
		if _, visited := state[node.Ref]; !visited {
			strongconnect(node.Ref)
		}
	}
	return components
}

// nontrivial reports whether a component can contain a cycle: more than one
// node, or a single node with a self-loop.
func nontrivial(component []graph.Ref, adjacency map[graph.Ref][]graph.Ref) bool {
	if len(component) > 1 {
		return true
	}
	only := component[0]
	for _, w := range adjacency[only] {
		if w == only {
			return true
		}
	}
	return false
}

// circuits enumerates the elementary cycles of one strongly connected
// component. For each start node in ascending order the search is restricted
// to nodes not smaller than the start, so every cycle is found exactly once,
// already rooted at its smallest identity. The blocked set with Johnson's
// unblock propagation avoids exponential re-exploration on components with
// many nodes but few cycles.
func circuits(component []graph.Ref, adjacency map[graph.Ref][]graph.Ref) []graph.Cycle {
	position := make(map[graph.Ref]int, len(component))
	for i, ref := range component {
		position[ref] = i
	}

	var cycles []graph.Cycle
	for startIdx, start := range component {
		allowed := func(ref graph.Ref) bool {
			idx, member := position[ref]
			return member && idx >= startIdx
		}

		blocked := make(map[graph.Ref]bool)
		blockList := make(map[graph.Ref]map[graph.Ref]bool)
		var stack []graph.Ref

		var unblock func(v graph.Ref)
		unblock = func(v graph.Ref) {
			blocked[v] = false
			for w := range blockList[v] {
				delete(blockList[v], w)
				if blocked[w] {
					unblock(w)
				}
			}
		}

		var circuit func(v graph.Ref) bool
		circuit = func(v graph.Ref) bool {
			found := false
			stack = append(stack, v)
			blocked[v] = true
			for _, w := range adjacency[v] {
				if !allowed(w) {
					continue
				}
				if w == start {
					cycle := make(graph.Cycle, len(stack))
					copy(cycle, stack)
					cycles = append(cycles, cycle.Canonicalize())
					found = true
				} else if !blocked[w] {
					if circuit(w) {
						found = true
					}
				}
			}
			if found {
				unblock(v)
			} else {
				for _, w := range adjacency[v] {
					if !allowed(w) {
						continue
					}
					if blockList[w] == nil {
						blockList[w] = make(map[graph.Ref]bool)
					}
					blockList[w][v] = true
				}
			}
			stack = stack[:len(stack)-1]
			return found
		}
		circuit(start)
	}
	return cycles
}

// cycleEdgeSet returns the directed edges taking part in any detected cycle,
// for renderers that highlight them.
func cycleEdgeSet(cycles []graph.Cycle) map[[2]graph.Ref]bool {
	edges := make(map[[2]graph.Ref]bool)
	for _, cycle := range cycles {
		for i := range cycle {
			from := cycle[i]
			to := cycle[(i+1)%len(cycle)]
			edges[[2]graph.Ref{from, to}] = true
		}
	}
	return edges
}
