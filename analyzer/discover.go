package analyzer

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs/url"

	"github.com/viant/makegraph/inspector/graph"
)

// discover walks the root and returns every file whose base name matches the
// Makefile naming convention, in lexicographic order so repeated runs against
// an unchanged tree stay diff-stable. Only a root that cannot be walked at
// all is fatal; a walk that fails after yielding entries degrades to a
// warning with the partial result kept.
func (a *Analyzer) discover(ctx context.Context, root string) ([]string, []graph.Warning, error) {
	var paths []string
	var warnings []graph.Warning
	visited := false
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		visited = true
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if info.IsDir() {
			return true, nil
		}
		if a.matchName(info.Name()) {
			paths = append(paths, url.Join(baseURL, path.Join(parent, info.Name())))
		}
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		if !visited {
			return nil, nil, &graph.DiscoveryError{Root: root, Err: err}
		}
		warnings = append(warnings, graph.Warning{Kind: graph.WarnFileRead, Path: root, Message: err.Error()})
	}
	sort.Strings(paths)
	return paths, warnings, nil
}

// matchName checks a base name against the configured Makefile patterns.
func (a *Analyzer) matchName(name string) bool {
	for _, pattern := range a.config.FileNames {
		if strings.ContainsAny(pattern, "*?[") {
			if ok, _ := filepath.Match(pattern, name); ok {
				return true
			}
			continue
		}
		if pattern == name {
			return true
		}
	}
	return false
}
