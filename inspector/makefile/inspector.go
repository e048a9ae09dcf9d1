package makefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/makegraph/inspector/graph"
)

// Inspector parses Makefiles into their target definitions and the
// invocation candidates referenced by prerequisites and recipe lines.
// An Inspector is cheap to create and not safe for concurrent use; the
// analyzer creates one per worker.
type Inspector struct {
	config   *graph.Config
	recipes  *recipeScanner
	warnings []graph.Warning
}

// NewInspector creates an inspector with the given config.
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Inspector{
		config:  config,
		recipes: newRecipeScanner(),
	}
}

// Warnings returns the non-fatal conditions collected since the last inspect
// call.
func (i *Inspector) Warnings() []graph.Warning {
	return i.warnings
}

// InspectFile parses a Makefile from disk.
func (i *Inspector) InspectFile(path string) (*graph.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read makefile %s: %w", path, err)
	}
	file, err := i.InspectSource(data)
	if err != nil {
		return nil, err
	}
	file.Rebase(path)
	file.Name = filepath.Base(path)
	return file, nil
}

// InspectSource parses Makefile content. Malformed lines never abort the
// file: they are skipped and recorded as parse warnings.
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	i.warnings = nil
	file := &graph.File{}
	digest, err := graph.Digest(src)
	if err != nil {
		return nil, fmt.Errorf("failed to digest makefile: %w", err)
	}
	file.Digest = digest

	lines := joinContinuations(strings.Split(string(src), "\n"))
	// current holds the targets of the last definition line; a multi-target
	// definition shares one recipe between all its names
	var current []*graph.Target
	// pattern rules and internal dot-targets own their recipe lines even
	// though they contribute no targets
	var swallowRecipes bool
	for _, entry := range lines {
		line := entry.text
		switch {
		case isBlank(line) || isComment(line):
			continue
		case isRecipe(line):
			if len(current) == 0 {
				if !swallowRecipes {
					i.warn(graph.WarnParse, entry.number, "recipe line before any target definition, skipped")
				}
				continue
			}
			recipe := strings.TrimRight(line, " \t")
			candidates := i.recipes.Scan(recipe, entry.number)
			for _, target := range current {
				target.Recipe = append(target.Recipe, strings.TrimLeft(recipe, " \t"))
				target.Invocations = append(target.Invocations, candidates...)
			}
		default:
			if names, ok := isPhonyDecl(line); ok {
				file.AddPhony(names...)
				current = nil
				swallowRecipes = true
				continue
			}
			if isAssignment(line) || isDirective(line) {
				current = nil
				swallowRecipes = false
				continue
			}
			names, prereqs, ok := splitDefinition(line)
			if !ok {
				current = nil
				swallowRecipes = strings.IndexByte(line, ':') > 0
				continue
			}
			swallowRecipes = false
			current = current[:0]
			for _, name := range names {
				target := i.defineTarget(file, name, entry.number)
				for _, prereq := range prereqs {
					target.Prereqs = append(target.Prereqs, prereq)
					target.Invocations = append(target.Invocations, &graph.Invocation{
						Kind: graph.InvocationPrerequisite,
						Name: prereq,
						Raw:  strings.TrimSpace(line),
						Line: entry.number,
					})
				}
				current = append(current, target)
			}
		}
	}
	return file, nil
}

// defineTarget returns the file's target with the given name, creating it on
// first definition. Repeated definitions merge: recipes concatenate in file
// order and prerequisites append.
func (i *Inspector) defineTarget(file *graph.File, name string, line int) *graph.Target {
	if existing := file.GetTarget(name); existing != nil {
		return existing
	}
	target := &graph.Target{Name: name, Line: line}
	file.AddTarget(target)
	return target
}

func (i *Inspector) warn(kind graph.WarningKind, line int, message string) {
	i.warnings = append(i.warnings, graph.Warning{Kind: kind, Line: line, Message: message})
}

// numberedLine keeps the original line number through continuation joining.
type numberedLine struct {
	text   string
	number int
}

// joinContinuations merges backslash-continued lines, keeping the number of
// the first physical line.
func joinContinuations(lines []string) []numberedLine {
	var result []numberedLine
	for idx := 0; idx < len(lines); idx++ {
		text := lines[idx]
		number := idx + 1
		for strings.HasSuffix(text, "\\") && idx+1 < len(lines) {
			text = strings.TrimSuffix(text, "\\") + " " + strings.TrimLeft(lines[idx+1], " \t")
			idx++
		}
		result = append(result, numberedLine{text: text, number: number})
	}
	return result
}
