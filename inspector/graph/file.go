package graph

// File represents a single parsed Makefile with its targets
type File struct {
	Name    string    // Base file name
	Path    string    // File path, relative to the analyzed root once the analyzer normalizes it
	Digest  uint64    // Content digest of the raw file
	Targets []*Target // Targets declared in this file, in definition order
	Phony   []string  // Names declared under .PHONY, in declaration order

	targetMap map[string]int // Map of targets for quick lookup
	phonySet  map[string]bool
}

// Target represents a named build step defined in a Makefile
type Target struct {
	Name        string        // Target name
	Path        string        // Path of the owning file
	Line        int           // 1-based line of the first definition
	Prereqs     []string      // Declared prerequisites, in declaration order
	Recipe      []string      // Recipe lines, merged across repeated definitions in file order
	Invocations []*Invocation // Invocation candidates extracted from prerequisites and recipe lines
}

// Ref returns the identity of the target within the analyzed tree
func (t *Target) Ref() Ref {
	return Ref{Path: t.Path, Name: t.Name}
}

// GetTarget retrieves a target by name from the file
func (f *File) GetTarget(name string) *Target {
	if f.Targets == nil {
		return nil
	}
	if idx, ok := f.targetMap[name]; ok && idx < len(f.Targets) {
		return f.Targets[idx]
	}
	return nil
}

// AddTarget adds a target to the file
func (f *File) AddTarget(target *Target) {
	if f.targetMap == nil {
		f.targetMap = make(map[string]int)
	}
	f.Targets = append(f.Targets, target)
	f.targetMap[target.Name] = len(f.Targets) - 1
}

// AddPhony records names declared under .PHONY
func (f *File) AddPhony(names ...string) {
	if f.phonySet == nil {
		f.phonySet = make(map[string]bool)
	}
	for _, name := range names {
		if f.phonySet[name] {
			continue
		}
		f.phonySet[name] = true
		f.Phony = append(f.Phony, name)
	}
}

// IsPhony reports whether the named target was declared .PHONY in this file
func (f *File) IsPhony(name string) bool {
	return f.phonySet[name]
}

// Rebase updates target ownership after the analyzer rewrites the file path
func (f *File) Rebase(path string) {
	f.Path = path
	for _, target := range f.Targets {
		target.Path = path
	}
}
