package makefile_test

import (
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/makegraph/inspector/graph"
	"github.com/viant/makegraph/inspector/makefile"
)

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name         string
		src          string
		wantTargets  []string
		wantPhony    []string
		wantWarnings int
		check        func(t *testing.T, file *graph.File)
	}{
		{
			name: "targets with recipes and prerequisites",
			src: dedent.Dedent(`
				.PHONY: all clean

				all: build test
					@echo done

				build:
					go build ./...

				clean:
					rm -rf bin
			`),
			wantTargets: []string{"all", "build", "clean"},
			wantPhony:   []string{"all", "clean"},
			check: func(t *testing.T, file *graph.File) {
				all := file.GetTarget("all")
				require.NotNil(t, all)
				assert.Equal(t, []string{"build", "test"}, all.Prereqs)
				assert.Equal(t, []string{"@echo done"}, all.Recipe)
				// two prerequisite candidates
				assert.Len(t, all.Invocations, 2)
				assert.Equal(t, graph.InvocationPrerequisite, all.Invocations[0].Kind)
			},
		},
		{
			name: "recursive make invocations",
			src: dedent.Dedent(`
				deploy:
					$(MAKE) -C services build
					$(MAKE) verify
			`),
			wantTargets: []string{"deploy"},
			check: func(t *testing.T, file *graph.File) {
				deploy := file.GetTarget("deploy")
				require.NotNil(t, deploy)
				require.Len(t, deploy.Invocations, 2)
				assert.Equal(t, "services", deploy.Invocations[0].Dir)
				assert.Equal(t, "build", deploy.Invocations[0].Name)
				assert.Equal(t, "verify", deploy.Invocations[1].Name)
			},
		},
		{
			name: "repeated definitions merge in file order",
			src: dedent.Dedent(`
				setup:
					echo first

				setup: tools
					echo second
			`),
			wantTargets: []string{"setup"},
			check: func(t *testing.T, file *graph.File) {
				setup := file.GetTarget("setup")
				require.NotNil(t, setup)
				assert.Equal(t, []string{"echo first", "echo second"}, setup.Recipe)
				assert.Equal(t, []string{"tools"}, setup.Prereqs)
			},
		},
		{
			name: "orphan recipe line warns and is skipped",
			src: dedent.Dedent(`
					echo orphan
				build:
					go build ./...
			`),
			wantTargets:  []string{"build"},
			wantWarnings: 1,
		},
		{
			name: "variables conditionals and pattern rules are not targets",
			src: dedent.Dedent(`
				CC := gcc
				SRC = main.c

				ifeq ($(OS),linux)
				PLATFORM = linux
				endif

				%.o: %.c
					$(CC) -c $<

				app: main.o
					$(CC) -o app main.o
			`),
			wantTargets: []string{"app"},
		},
		{
			name: "continuation lines join",
			src: dedent.Dedent(`
				all: build \
						test
					@echo ok
			`),
			wantTargets: []string{"all"},
			check: func(t *testing.T, file *graph.File) {
				all := file.GetTarget("all")
				require.NotNil(t, all)
				assert.Equal(t, []string{"build", "test"}, all.Prereqs)
			},
		},
		{
			name:        "empty source",
			src:         "",
			wantTargets: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inspector := makefile.NewInspector(nil)
			file, err := inspector.InspectSource([]byte(tc.src))
			require.NoError(t, err)

			var names []string
			for _, target := range file.Targets {
				names = append(names, target.Name)
			}
			assert.Equal(t, tc.wantTargets, names)
			assert.Equal(t, tc.wantPhony, file.Phony)
			assert.Len(t, inspector.Warnings(), tc.wantWarnings)
			if tc.check != nil {
				tc.check(t, file)
			}
		})
	}
}

func TestInspector_Digest(t *testing.T) {
	inspector := makefile.NewInspector(nil)
	first, err := inspector.InspectSource([]byte("a:\n\techo one\n"))
	require.NoError(t, err)
	second, err := inspector.InspectSource([]byte("a:\n\techo one\n"))
	require.NoError(t, err)
	changed, err := inspector.InspectSource([]byte("a:\n\techo two\n"))
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
	assert.NotEqual(t, first.Digest, changed.Digest)
}
