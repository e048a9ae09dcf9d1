package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallGraph_AddNode(t *testing.T) {
	g := NewCallGraph()
	ref := Ref{Path: "Makefile", Name: "build"}

	leaf := g.AddNode(&Node{Ref: ref, Kind: NodeUnresolved, Label: "make build"})
	assert.Equal(t, NodeUnresolved, leaf.Kind)

	// defining the target later upgrades the synthesized leaf in place
	target := &Target{Name: "build", Path: "Makefile"}
	node := g.AddNode(&Node{Ref: ref, Kind: NodeTarget, Target: target})
	assert.Same(t, leaf, node)
	assert.Equal(t, NodeTarget, node.Kind)
	assert.Same(t, target, node.Target)
	assert.Empty(t, node.Label)
	assert.Equal(t, 1, g.NodeCount())
}

func TestCallGraph_Edges(t *testing.T) {
	a := Ref{Path: "Makefile", Name: "a"}
	b := Ref{Path: "Makefile", Name: "b"}
	g := NewCallGraph()
	g.AddNode(&Node{Ref: b, Kind: NodeTarget})
	g.AddNode(&Node{Ref: a, Kind: NodeTarget})
	g.AddEdge(Edge{From: a, To: b, Line: 3})
	g.AddEdge(Edge{From: a, To: b, Line: 5})
	g.AddEdge(Edge{From: b, To: a, Line: 8})

	assert.Equal(t, 3, g.EdgeCount())
	assert.Len(t, g.Outgoing(a), 2)
	// callers come back in node insertion order, b first
	edges := g.Edges()
	assert.Equal(t, b, edges[0].From)
	assert.Equal(t, a, edges[1].From)
}

func TestCycle_Canonicalize(t *testing.T) {
	a := Ref{Path: "Makefile", Name: "a"}
	b := Ref{Path: "Makefile", Name: "b"}
	c := Ref{Path: "sub/Makefile", Name: "c"}

	rotated := Cycle{c, a, b}.Canonicalize()
	assert.Equal(t, Cycle{a, b, c}, rotated)
	assert.Equal(t, Cycle{a, b, c}.Key(), rotated.Key())
	assert.Equal(t, "Makefile:a -> Makefile:b -> sub/Makefile:c -> Makefile:a", rotated.String())

	self := Cycle{a}.Canonicalize()
	assert.Equal(t, Cycle{a}, self)
	assert.Equal(t, "Makefile:a -> Makefile:a", self.String())
}
