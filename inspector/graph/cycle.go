package graph

import "strings"

// Cycle is an elementary cycle: an ordered sequence of distinct target
// identities forming a closed walk. A single-element cycle is a self-loop.
type Cycle []Ref

// Canonicalize rotates the cycle so it starts at its smallest identity,
// making rotations of the same cycle compare equal.
func (c Cycle) Canonicalize() Cycle {
	if len(c) < 2 {
		return c
	}
	smallest := 0
	for i := 1; i < len(c); i++ {
		if c[i].Less(c[smallest]) {
			smallest = i
		}
	}
	if smallest == 0 {
		return c
	}
	rotated := make(Cycle, 0, len(c))
	rotated = append(rotated, c[smallest:]...)
	rotated = append(rotated, c[:smallest]...)
	return rotated
}

// Key returns a stable identity for deduplication.
func (c Cycle) Key() string {
	return c.String()
}

// String renders the closed walk, returning to the starting identity.
func (c Cycle) String() string {
	if len(c) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c)+1)
	for _, ref := range c {
		parts = append(parts, ref.String())
	}
	parts = append(parts, c[0].String())
	return strings.Join(parts, " -> ")
}
