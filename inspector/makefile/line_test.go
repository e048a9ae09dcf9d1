package makefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDefinition(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantNames   []string
		wantPrereqs []string
		wantOK      bool
	}{
		{
			name:      "simple target",
			line:      "build:",
			wantNames: []string{"build"},
			wantOK:    true,
		},
		{
			name:        "target with prerequisites",
			line:        "all: build test",
			wantNames:   []string{"all"},
			wantPrereqs: []string{"build", "test"},
			wantOK:      true,
		},
		{
			name:        "multiple targets share prerequisites",
			line:        "foo bar: baz",
			wantNames:   []string{"foo", "bar"},
			wantPrereqs: []string{"baz"},
			wantOK:      true,
		},
		{
			name:        "double colon rule",
			line:        "install:: stage",
			wantNames:   []string{"install"},
			wantPrereqs: []string{"stage"},
			wantOK:      true,
		},
		{
			name:        "inline comment stripped from prerequisites",
			line:        "deploy: build # ship it",
			wantNames:   []string{"deploy"},
			wantPrereqs: []string{"build"},
			wantOK:      true,
		},
		{
			name:        "order only prerequisites kept",
			line:        "out: in | dir",
			wantNames:   []string{"out"},
			wantPrereqs: []string{"in", "dir"},
			wantOK:      true,
		},
		{
			name:        "target specific variable is not a prerequisite",
			line:        "debug: CFLAGS=-g",
			wantNames:   []string{"debug"},
			wantPrereqs: nil,
			wantOK:      true,
		},
		{
			name:   "recipe line",
			line:   "\tgo build ./...",
			wantOK: false,
		},
		{
			name:   "comment line",
			line:   "# build everything",
			wantOK: false,
		},
		{
			name:   "simple assignment",
			line:   "CC = gcc",
			wantOK: false,
		},
		{
			name:   "colon assignment",
			line:   "CC := gcc",
			wantOK: false,
		},
		{
			name:   "pattern rule skipped",
			line:   "%.o: %.c",
			wantOK: false,
		},
		{
			name:   "internal dot target skipped",
			line:   ".SUFFIXES: .c .o",
			wantOK: false,
		},
		{
			name:   "conditional directive",
			line:   "ifeq ($(OS),linux)",
			wantOK: false,
		},
		{
			name:   "include directive",
			line:   "include common.mk",
			wantOK: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			names, prereqs, ok := splitDefinition(tc.line)
			assert.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			assert.Equal(t, tc.wantNames, names)
			assert.Equal(t, tc.wantPrereqs, prereqs)
		})
	}
}

func TestIsAssignment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"CC = gcc", true},
		{"CC=gcc", true},
		{"CC := gcc", true},
		{"CC ?= gcc", true},
		{"CC += -Wall", true},
		{"build:", false},
		{"all: build", false},
		{"debug: CFLAGS=-g", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, isAssignment(tc.line), tc.line)
	}
}

func TestIsPhonyDecl(t *testing.T) {
	names, ok := isPhonyDecl(".PHONY: all clean test # keep fresh")
	assert.True(t, ok)
	assert.Equal(t, []string{"all", "clean", "test"}, names)

	_, ok = isPhonyDecl("all: clean")
	assert.False(t, ok)
}

func TestLooksLikePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"main.c", true},
		{"src/app.go", true},
		{"sub/Makefile", true},
		{"build", false},
		{"docker-image", false},
		{".hidden", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LooksLikePath(tc.name), tc.name)
	}
}

func TestIsMacro(t *testing.T) {
	assert.True(t, IsMacro("$(TARGET)"))
	assert.True(t, IsMacro("pre-${STAGE}"))
	assert.False(t, IsMacro("build"))
}
