package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/makegraph/inspector/graph"
)

// Summary is the structured result rendered alongside (or instead of) the
// graph formats.
type Summary struct {
	Project   string          `yaml:"project,omitempty"`
	Root      string          `yaml:"root"`
	Makefiles int             `yaml:"makefiles"`
	Targets   int             `yaml:"targets"`
	Files     []FileSummary   `yaml:"files,omitempty"`
	Cycles    []string        `yaml:"cycles,omitempty"`
	Warnings  []graph.Warning `yaml:"warnings,omitempty"`
}

// FileSummary lists one Makefile's targets, root-first.
type FileSummary struct {
	Path    string   `yaml:"path"`
	Digest  string   `yaml:"digest"`
	Targets []string `yaml:"targets,omitempty"`
	Phony   []string `yaml:"phony,omitempty"`
}

// Summary reduces the report to the structured form.
func (r *Report) Summary() *Summary {
	summary := &Summary{
		Root:      r.Root,
		Makefiles: len(r.Files),
	}
	if r.Project != nil {
		summary.Project = r.Project.Name
	}
	for _, file := range sortRootFirst(r.Files) {
		entry := FileSummary{
			Path:   file.Path,
			Digest: fmt.Sprintf("%016x", file.Digest),
			Phony:  file.Phony,
		}
		for _, target := range file.Targets {
			entry.Targets = append(entry.Targets, target.Name)
			summary.Targets++
		}
		summary.Files = append(summary.Files, entry)
	}
	for _, cycle := range r.Cycles {
		summary.Cycles = append(summary.Cycles, cycle.String())
	}
	summary.Warnings = r.Warnings
	return summary
}

// Marshal renders the summary as YAML.
func (s *Summary) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// FileTargets is the per-file target list for an external runner that
// invokes each target independently.
type FileTargets struct {
	Path    string
	Targets []graph.Ref
}

// TargetsByFile returns every defined target grouped by owning file, files
// ordered root-first then deeper, so a consumer can work outward from the
// tree root.
func (r *Report) TargetsByFile() []FileTargets {
	var result []FileTargets
	for _, file := range sortRootFirst(r.Files) {
		entry := FileTargets{Path: file.Path}
		for _, target := range file.Targets {
			entry.Targets = append(entry.Targets, target.Ref())
		}
		result = append(result, entry)
	}
	return result
}

// sortRootFirst orders files by tree depth, then lexicographically.
func sortRootFirst(files []*graph.File) []*graph.File {
	sorted := make([]*graph.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		depthI := strings.Count(sorted[i].Path, "/")
		depthJ := strings.Count(sorted[j].Path, "/")
		if depthI != depthJ {
			return depthI < depthJ
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}
