package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, name, content string) {
	t.Helper()
	location := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestDetector_DetectProject(t *testing.T) {
	t.Run("go module", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "go.mod", "module github.com/acme/widgets\n\ngo 1.23\n")
		write(t, root, "services/api/Makefile", "build:\n\ttrue\n")

		project, err := New().DetectProject(filepath.Join(root, "services", "api"))
		require.NoError(t, err)
		assert.Equal(t, "go", project.Type)
		assert.Equal(t, root, project.RootPath)
		assert.Equal(t, "github.com/acme/widgets", project.Name)
	})

	t.Run("javascript package", func(t *testing.T) {
		root := t.TempDir()
		write(t, root, "package.json", `{"name": "webapp", "version": "1.0.0"}`)

		project, err := New().DetectProject(root)
		require.NoError(t, err)
		assert.Equal(t, "javascript", project.Type)
		assert.Equal(t, "webapp", project.Name)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := New().DetectProject(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func TestDetector_DetectRepository(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".git/config", "[remote \"origin\"]\n\turl = git@github.com:acme/widgets.git\n")
	write(t, root, "Makefile", "all:\n\ttrue\n")

	repo, err := New().DetectRepository(root)
	require.NoError(t, err)
	assert.Equal(t, "git", repo.Kind)
	assert.Equal(t, root, repo.Root)
	assert.Equal(t, "git@github.com:acme/widgets.git", repo.Origin)
	require.NotNil(t, repo.Info)
	assert.Equal(t, "widgets", repo.Info.Name)
}
