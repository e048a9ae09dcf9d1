package analyzer

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"

	"github.com/viant/makegraph/inspector/graph"
	"github.com/viant/makegraph/inspector/makefile"
	"github.com/viant/makegraph/inspector/repository"
)

// Analyzer walks a directory tree of Makefiles and builds a call graph of
// their targets.
type Analyzer struct {
	fs     afs.Service
	config *graph.Config
}

// New creates an analyzer with the given options.
func New(options ...Option) *Analyzer {
	analyzer := &Analyzer{
		fs:     afs.New(),
		config: graph.DefaultConfig(),
	}
	for _, option := range options {
		option(analyzer)
	}
	analyzer.config.Init()
	return analyzer
}

// Report is the result of one analysis run. All entities are built fresh on
// each invocation; nothing persists between runs.
type Report struct {
	Root     string
	Project  *repository.Project
	Files    []*graph.File
	Graph    *graph.CallGraph
	Cycles   []graph.Cycle
	Warnings []graph.Warning
}

// AnalyzeDir discovers every Makefile under root, parses them concurrently,
// resolves cross-file invocations and assembles the call graph. A root that
// cannot be walked at all is fatal (*graph.DiscoveryError); every other
// imperfection accumulates into Report.Warnings.
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string) (*Report, error) {
	absRoot := root
	if !strings.Contains(root, "://") {
		var err error
		if absRoot, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
		}
	}
	report := &Report{Root: absRoot}
	if project, err := repository.New().DetectProject(absRoot); err == nil {
		report.Project = project
	}

	paths, warnings, err := a.discover(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(report.Warnings, warnings...)

	files, warnings, err := a.parseAll(ctx, absRoot, paths)
	if err != nil {
		return nil, err
	}
	report.Files = files
	report.Warnings = append(report.Warnings, warnings...)

	callGraph, warnings := a.buildGraph(ctx, absRoot, files)
	report.Graph = callGraph
	report.Warnings = append(report.Warnings, warnings...)
	report.Cycles = DetectCycles(callGraph)
	return report, nil
}

// parseAll fans per-file parsing out over a bounded worker pool and merges
// the results into a deterministic, path-sorted slice once every worker is
// done. Cross-file resolution needs the full set, so nothing downstream
// starts earlier.
func (a *Analyzer) parseAll(ctx context.Context, root string, paths []string) ([]*graph.File, []graph.Warning, error) {
	concurrency := a.config.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	var mutex sync.Mutex
	var files []*graph.File
	var warnings []graph.Warning
	for _, location := range paths {
		location := location
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			relPath := relativePath(root, location)
			data, err := a.fs.DownloadWithURL(ctx, location)
			if err != nil {
				mutex.Lock()
				warnings = append(warnings, graph.Warning{Kind: graph.WarnFileRead, Path: relPath, Message: err.Error()})
				mutex.Unlock()
				return nil
			}
			inspector := makefile.NewInspector(a.config)
			file, err := inspector.InspectSource(data)
			if err != nil {
				mutex.Lock()
				warnings = append(warnings, graph.Warning{Kind: graph.WarnParse, Path: relPath, Message: err.Error()})
				mutex.Unlock()
				return nil
			}
			file.Rebase(relPath)
			file.Name = path.Base(relPath)
			fileWarnings := inspector.Warnings()
			for i := range fileWarnings {
				fileWarnings[i].Path = relPath
			}
			mutex.Lock()
			files = append(files, file)
			warnings = append(warnings, fileWarnings...)
			mutex.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Path != warnings[j].Path {
			return warnings[i].Path < warnings[j].Path
		}
		return warnings[i].Line < warnings[j].Line
	})
	return files, warnings, nil
}

// relativePath strips the root prefix from a discovered location. The walk
// yields scheme-qualified URLs even for plain filesystem roots, so the
// location is reduced to its path form before trimming.
func relativePath(root, location string) string {
	if !strings.Contains(root, "://") {
		location = url.Path(location)
	}
	prefix := root
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	if len(location) > len(prefix) && location[:len(prefix)] == prefix {
		return location[len(prefix):]
	}
	return location
}
