package graph

// InvocationKind classifies how a recipe or definition line references another target.
type InvocationKind int

const (
	// InvocationPrerequisite is a name taken from a target's dependency list.
	InvocationPrerequisite InvocationKind = iota
	// InvocationRecursiveMake is a recursive make command found in a recipe line.
	InvocationRecursiveMake
)

// Invocation is an unresolved reference extracted from a target definition or
// recipe line. Invocations are transient; the resolver consumes them into
// edges or unresolved leaf nodes.
type Invocation struct {
	Kind InvocationKind
	Name string // Referenced target name; may contain an unexpanded macro, may be empty for a sub-make default goal
	File string // Explicit makefile reference (-f style), relative to the calling file's directory
	Dir  string // Explicit directory reference (-C style), relative to the calling file's directory
	Raw  string // Original line text, preserved for reporting
	Line int    // 1-based line the reference was found on
}

// CrossFile reports whether the invocation carries an explicit file or directory hint.
func (i *Invocation) CrossFile() bool {
	return i.File != "" || i.Dir != ""
}
