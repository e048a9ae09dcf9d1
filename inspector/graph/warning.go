package graph

import "fmt"

// WarningKind classifies a non-fatal condition encountered during analysis.
type WarningKind string

const (
	// WarnFileRead marks a discovered Makefile that could not be read.
	WarnFileRead WarningKind = "file_read"
	// WarnParse marks a malformed line skipped within an otherwise valid file.
	WarnParse WarningKind = "parse"
	// WarnUnresolved marks an invocation that could not be attributed to a known target.
	WarnUnresolved WarningKind = "unresolved_invocation"
)

// Warning is a non-fatal condition accumulated alongside the analysis result.
// The analysis always produces a best-effort graph; warnings keep the report
// honest about what it skipped or could not resolve.
type Warning struct {
	Kind    WarningKind `yaml:"kind"`
	Path    string      `yaml:"path,omitempty"`
	Line    int         `yaml:"line,omitempty"`
	Message string      `yaml:"message"`
}

func (w Warning) String() string {
	switch {
	case w.Path != "" && w.Line > 0:
		return fmt.Sprintf("%s: %s:%d: %s", w.Kind, w.Path, w.Line, w.Message)
	case w.Path != "":
		return fmt.Sprintf("%s: %s: %s", w.Kind, w.Path, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
}

// DiscoveryError is fatal: the analysis root itself was inaccessible.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to discover makefiles under %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
