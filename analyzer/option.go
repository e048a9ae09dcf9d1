package analyzer

import (
	"github.com/viant/afs"

	"github.com/viant/makegraph/inspector/graph"
)

type Option func(*Analyzer)

// WithConfig sets the analysis configuration.
func WithConfig(config *graph.Config) Option {
	return func(a *Analyzer) {
		if config != nil {
			a.config = config
		}
	}
}

// WithFS sets the filesystem service used for discovery and reading, e.g. a
// memory filesystem in tests.
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithFileNames overrides the base-name patterns recognized as Makefiles.
func WithFileNames(names ...string) Option {
	return func(a *Analyzer) {
		a.config.FileNames = names
	}
}

// WithConcurrency bounds the per-file parse workers.
func WithConcurrency(concurrency int) Option {
	return func(a *Analyzer) {
		a.config.Concurrency = concurrency
	}
}

// WithSkipSourceDeps drops prerequisites that name source files rather than targets.
func WithSkipSourceDeps(skip bool) Option {
	return func(a *Analyzer) {
		a.config.SkipSourceDeps = skip
	}
}

// WithPhonyOnly restricts the graph to targets declared .PHONY.
func WithPhonyOnly(phonyOnly bool) Option {
	return func(a *Analyzer) {
		a.config.PhonyOnly = phonyOnly
	}
}
