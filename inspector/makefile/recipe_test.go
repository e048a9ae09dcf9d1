package makefile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/makegraph/inspector/graph"
)

func TestRecipeScanner_Scan(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []*graph.Invocation
	}{
		{
			name: "no make invocation",
			line: "\tgo build ./...",
			want: nil,
		},
		{
			name: "recursive make by target name",
			line: "\t$(MAKE) build",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "build"},
			},
		},
		{
			name: "curly macro form",
			line: "\t${MAKE} clean",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "clean"},
			},
		},
		{
			name: "silent prefix stripped",
			line: "\t@$(MAKE) test",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "test"},
			},
		},
		{
			name: "directory hint",
			line: "\t$(MAKE) -C sub build",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "build", Dir: "sub"},
			},
		},
		{
			name: "file hint",
			line: "\t$(MAKE) -f sub/Makefile deploy",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "deploy", File: "sub/Makefile"},
			},
		},
		{
			name: "directory hint without goal targets the default goal",
			line: "\t$(MAKE) -C services/api",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "", Dir: "services/api"},
			},
		},
		{
			name: "several goals in one call",
			line: "\t$(MAKE) clean build",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "clean"},
				{Kind: graph.InvocationRecursiveMake, Name: "build"},
			},
		},
		{
			name: "variable overrides and flags skipped",
			line: "\t$(MAKE) -j4 --no-print-directory VERBOSE=1 release",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "release"},
			},
		},
		{
			name: "make behind a command list",
			line: "\tgo vet ./... && $(MAKE) lint",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "lint"},
			},
		},
		{
			name: "macro built goal preserved literally",
			line: "\t$(MAKE) $(TARGET)",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "$(TARGET)"},
			},
		},
		{
			name: "plain make command",
			line: "\tmake install",
			want: []*graph.Invocation{
				{Kind: graph.InvocationRecursiveMake, Name: "install"},
			},
		},
		{
			name: "unrelated tool named like make documentation",
			line: "\techo make build",
			want: nil,
		},
	}

	scanner := newRecipeScanner()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := scanner.Scan(tc.line, 7)
			assert.Equal(t, len(tc.want), len(actual), "invocation count")
			for i := range tc.want {
				if i >= len(actual) {
					break
				}
				assert.Equal(t, tc.want[i].Kind, actual[i].Kind)
				assert.Equal(t, tc.want[i].Name, actual[i].Name)
				assert.Equal(t, tc.want[i].Dir, actual[i].Dir)
				assert.Equal(t, tc.want[i].File, actual[i].File)
				assert.Equal(t, 7, actual[i].Line)
			}
		})
	}
}
