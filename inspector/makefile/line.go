package makefile

import (
	"strings"
)

// Line classification is a set of small, independently testable predicates
// composed in a fixed order by the inspector. Make has no single grammar to
// lean on here; each predicate encodes one narrow convention.

// internalTargets are GNU make special targets that never represent build steps.
var internalTargets = map[string]bool{
	".DEFAULT":              true,
	".SUFFIXES":             true,
	".INTERMEDIATE":         true,
	".SECONDARY":            true,
	".PRECIOUS":             true,
	".IGNORE":               true,
	".SILENT":               true,
	".EXPORT_ALL_VARIABLES": true,
	".NOTPARALLEL":          true,
	".ONESHELL":             true,
	".POSIX":                true,
	".DELETE_ON_ERROR":      true,
	".PHONY":                true,
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

// isRecipe reports whether the line is indented, signalling a recipe line
// belonging to the preceding target definition.
func isRecipe(line string) bool {
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ")
}

// isAssignment reports whether the line is a variable assignment rather than
// a rule: the first '=' appears before the first ':', or the line uses one of
// the combined assignment operators.
func isAssignment(line string) bool {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return false
	}
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return true
	}
	if eq < colon {
		return true
	}
	// VAR := value, VAR ?= value, VAR += value
	return eq == colon+1
}

// isDirective reports whether the line is a make directive rather than a rule.
func isDirective(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, keyword := range []string{"include ", "-include ", "sinclude ", "include\t", "export ", "unexport ", "override ", "define ", "endef", "ifeq", "ifneq", "ifdef", "ifndef", "else", "endif", "vpath "} {
		if trimmed == strings.TrimSpace(keyword) || strings.HasPrefix(trimmed, keyword) {
			return true
		}
	}
	return false
}

// isPhonyDecl reports whether the line declares .PHONY names, returning them.
func isPhonyDecl(line string) ([]string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ".PHONY") {
		return nil, false
	}
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return nil, false
	}
	return strings.Fields(stripInlineComment(trimmed[colon+1:])), true
}

// splitDefinition recognizes a target definition line at column zero:
// one or more target names, a colon, and optional prerequisites. Pattern
// rules, dot-targets and internal targets yield no usable names.
func splitDefinition(line string) (names []string, prereqs []string, ok bool) {
	if isRecipe(line) || isComment(line) || isBlank(line) || isAssignment(line) || isDirective(line) {
		return nil, nil, false
	}
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return nil, nil, false
	}
	namePart := strings.TrimSpace(line[:colon])
	depPart := line[colon+1:]
	// target:: is a double-colon rule; the extra colon is not a prerequisite
	depPart = strings.TrimPrefix(depPart, ":")
	depPart = stripInlineComment(depPart)
	// order-only prerequisites behave like prerequisites for call graph purposes
	depPart = strings.ReplaceAll(depPart, "|", " ")

	for _, name := range strings.Fields(namePart) {
		if !usableTargetName(name) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, nil, false
	}
	for _, dep := range strings.Fields(depPart) {
		// target-specific variable assignments are not prerequisites
		if strings.Contains(dep, "=") {
			continue
		}
		prereqs = append(prereqs, dep)
	}
	return names, prereqs, true
}

// usableTargetName filters out pattern rules, internal dot-targets and
// absolute paths leaked from generated files.
func usableTargetName(name string) bool {
	if name == "" || strings.Contains(name, "%") {
		return false
	}
	if internalTargets[name] {
		return false
	}
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "./") {
		return false
	}
	if strings.HasPrefix(name, "/") {
		return false
	}
	return true
}

// LooksLikePath reports whether a prerequisite name looks like a file path
// rather than a target name, making it a source dependency candidate.
func LooksLikePath(name string) bool {
	if strings.ContainsAny(name, "/\\") {
		return true
	}
	dot := strings.LastIndexByte(name, '.')
	return dot > 0 && dot < len(name)-1
}

// IsMacro reports whether the name still contains an unexpanded make macro.
// Macro-built names are recorded as unresolved with the literal preserved,
// never expanded.
func IsMacro(name string) bool {
	return strings.Contains(name, "$(") || strings.Contains(name, "${")
}

func stripInlineComment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
