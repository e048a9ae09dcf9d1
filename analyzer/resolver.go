package analyzer

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/viant/afs/url"

	"github.com/viant/makegraph/inspector/graph"
	"github.com/viant/makegraph/inspector/makefile"
)

// resolution carries the state of one cross-file resolution pass. Resolution
// needs global knowledge of every parsed file, so it runs strictly after all
// parsing has finished.
type resolution struct {
	analyzer *Analyzer
	ctx      context.Context
	root     string
	files    map[string]*graph.File
	byDir    map[string][]string
	graph    *graph.CallGraph
	warnings []graph.Warning
}

// buildGraph resolves every invocation candidate into an edge, an external
// leaf or an unresolved leaf, and assembles the call graph. Every defined
// target appears as a node even with no edges; nothing is silently dropped
// except source dependencies when that mode is requested.
func (a *Analyzer) buildGraph(ctx context.Context, root string, files []*graph.File) (*graph.CallGraph, []graph.Warning) {
	state := &resolution{
		analyzer: a,
		ctx:      ctx,
		root:     root,
		files:    make(map[string]*graph.File, len(files)),
		byDir:    make(map[string][]string),
		graph:    graph.NewCallGraph(),
	}
	for _, file := range files {
		state.files[file.Path] = file
		dir := path.Dir(file.Path)
		state.byDir[dir] = append(state.byDir[dir], file.Path)
	}

	// register every kept target first so zero-edge targets still show up
	for _, file := range files {
		for _, target := range file.Targets {
			if !state.keep(file, target.Name) {
				continue
			}
			state.graph.AddNode(&graph.Node{Ref: target.Ref(), Kind: graph.NodeTarget, Target: target})
		}
	}
	for _, file := range files {
		for _, target := range file.Targets {
			if !state.keep(file, target.Name) {
				continue
			}
			for _, invocation := range target.Invocations {
				state.resolve(file, target, invocation)
			}
		}
	}
	return state.graph, state.warnings
}

// keep applies the phony-only filter.
func (s *resolution) keep(file *graph.File, name string) bool {
	return !s.analyzer.config.PhonyOnly || file.IsPhony(name)
}

// resolve attributes one invocation candidate: same-file lookup first, then
// an explicit file/directory reference, otherwise an unresolved leaf.
func (s *resolution) resolve(file *graph.File, caller *graph.Target, invocation *graph.Invocation) {
	from := caller.Ref()
	if makefile.IsMacro(invocation.Name) {
		s.addUnresolved(from, invocation, invocation.Name)
		return
	}
	if invocation.CrossFile() {
		s.resolveCrossFile(file, caller, invocation)
		return
	}

	if callee := file.GetTarget(invocation.Name); callee != nil {
		if !s.keep(file, callee.Name) {
			return
		}
		s.graph.AddEdge(graph.Edge{From: from, To: callee.Ref(), Line: invocation.Line})
		return
	}

	if invocation.Kind == graph.InvocationPrerequisite && s.isSourceDependency(file, invocation.Name) {
		// dropped before reaching the graph when skip-source mode is on
		return
	}
	s.addUnresolved(from, invocation, invocation.Name)
}

// resolveCrossFile follows an explicit -C/-f style reference, joining
// relative paths against the calling file's directory.
func (s *resolution) resolveCrossFile(file *graph.File, caller *graph.Target, invocation *graph.Invocation) {
	from := caller.Ref()
	if makefile.IsMacro(invocation.File) || makefile.IsMacro(invocation.Dir) {
		// variable-built path; unresolved rather than a guess
		s.addUnresolved(from, invocation, invocation.Raw)
		return
	}
	callerDir := path.Dir(file.Path)

	calleePath := ""
	switch {
	case invocation.File != "":
		// make chdirs into -C before reading -f
		calleePath = path.Join(callerDir, invocation.Dir, invocation.File)
	default:
		dir := path.Join(callerDir, invocation.Dir)
		calleePath = s.defaultMakefile(dir)
		if calleePath == "" {
			// referenced directory was not discovered; synthesize by convention
			calleePath = path.Join(dir, "Makefile")
		}
	}

	callee, discovered := s.files[calleePath]
	if !discovered {
		s.addExternal(from, invocation, calleePath, callerDir)
		return
	}

	name := invocation.Name
	if name == "" {
		// a sub-make without an explicit goal runs the file's first target
		if len(callee.Targets) == 0 {
			s.warnUnresolved(file.Path, invocation, fmt.Sprintf("%s defines no targets", calleePath))
			return
		}
		name = callee.Targets[0].Name
	}
	target := callee.GetTarget(name)
	if target == nil {
		s.addUnresolvedAt(from, invocation, calleePath, name, callerDir)
		return
	}
	if !s.keep(callee, target.Name) {
		return
	}
	edge := graph.Edge{From: from, To: target.Ref(), Line: invocation.Line}
	if calleePath != file.Path {
		edge.Label = crossFileLabel(callerDir, calleePath)
	}
	s.graph.AddEdge(edge)
}

// defaultMakefile picks the discovered makefile a bare -C <dir> reference
// lands on, honoring the configured name precedence.
func (s *resolution) defaultMakefile(dir string) string {
	candidates := s.byDir[dir]
	if len(candidates) == 0 {
		return ""
	}
	for _, pattern := range s.analyzer.config.FileNames {
		for _, candidate := range candidates {
			if ok, _ := filepath.Match(pattern, path.Base(candidate)); ok || pattern == path.Base(candidate) {
				return candidate
			}
		}
	}
	return candidates[0]
}

// isSourceDependency reports whether a prerequisite should be excluded as a
// source-file dependency: skip-source mode is on and the name either looks
// like a path or names an existing file next to the caller.
func (s *resolution) isSourceDependency(file *graph.File, name string) bool {
	if !s.analyzer.config.SkipSourceDeps {
		return false
	}
	if makefile.LooksLikePath(name) {
		return true
	}
	location := url.Join(s.root, path.Join(path.Dir(file.Path), name))
	exists, _ := s.analyzer.fs.Exists(s.ctx, location)
	return exists
}

// addExternal records a call into a makefile outside the discovered tree.
func (s *resolution) addExternal(from graph.Ref, invocation *graph.Invocation, calleePath, callerDir string) {
	ref := graph.Ref{Path: calleePath, Name: invocation.Name}
	s.graph.AddNode(&graph.Node{Ref: ref, Kind: graph.NodeExternal, Label: invocation.Raw})
	s.graph.AddEdge(graph.Edge{From: from, To: ref, Label: crossFileLabel(callerDir, calleePath), Line: invocation.Line})
}

// addUnresolved records a reference with no cross-file hint that matched no
// known target.
func (s *resolution) addUnresolved(from graph.Ref, invocation *graph.Invocation, name string) {
	ref := graph.Ref{Name: name}
	s.graph.AddNode(&graph.Node{Ref: ref, Kind: graph.NodeUnresolved, Label: invocation.Raw})
	s.graph.AddEdge(graph.Edge{From: from, To: ref, Line: invocation.Line})
	s.warnUnresolved(from.Path, invocation, fmt.Sprintf("cannot resolve %q", name))
}

// addUnresolvedAt records a reference to a known file that defines no such
// target.
func (s *resolution) addUnresolvedAt(from graph.Ref, invocation *graph.Invocation, calleePath, name, callerDir string) {
	ref := graph.Ref{Path: calleePath, Name: name}
	s.graph.AddNode(&graph.Node{Ref: ref, Kind: graph.NodeUnresolved, Label: invocation.Raw})
	s.graph.AddEdge(graph.Edge{From: from, To: ref, Label: crossFileLabel(callerDir, calleePath), Line: invocation.Line})
	s.warnUnresolved(from.Path, invocation, fmt.Sprintf("%s defines no target %q", calleePath, name))
}

func (s *resolution) warnUnresolved(callerPath string, invocation *graph.Invocation, message string) {
	s.warnings = append(s.warnings, graph.Warning{
		Kind:    graph.WarnUnresolved,
		Path:    callerPath,
		Line:    invocation.Line,
		Message: message,
	})
}

// crossFileLabel is the edge label for a cross-file call: the callee path
// relative to the calling file's directory.
func crossFileLabel(callerDir, calleePath string) string {
	if rel, err := filepath.Rel(callerDir, calleePath); err == nil {
		return filepath.ToSlash(rel)
	}
	return calleePath
}
