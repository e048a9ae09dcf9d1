package repository

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector identifies the project a Makefile tree belongs to, so the report
// can name what was analyzed.
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"go.mod",       // Go projects
			"package.json", // JavaScript/Node projects
			"pom.xml",      // Java/Maven projects
			"Cargo.toml",   // Rust projects
			".git",         // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given path and returns
// project info. The path may be a directory or a file inside it.
func (d *Detector) DetectProject(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
		info.Name = d.extractProjectName(rootPath, projectType)
	}
	if info.Name == "" {
		info.Name = filepath.Base(info.RootPath)
	}
	return info, nil
}

// DetectRepository identifies the repository containing the given path.
func (d *Detector) DetectRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	info, err := d.DetectProject(path)
	if err != nil {
		return nil, err
	}
	repo := &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}
	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		repo.Kind = "git"
		repo.Root = gitRoot
		repo.Origin = d.extractGitOrigin(gitRoot)
	}
	return repo, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir, projectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the directory.
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			break
		}
		dir = parent
	}
	return ""
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(rootPath string, kind string) string {
	switch kind {
	case "go":
		return extractGoModuleName(filepath.Join(rootPath, "go.mod"))
	case "javascript":
		return extractJSPackageName(filepath.Join(rootPath, "package.json"))
	case "git":
		return extractGitProjectName(rootPath, d.extractGitOrigin(rootPath))
	default:
		return filepath.Base(rootPath)
	}
}

func extractGoModuleName(goModPath string) string {
	fs := afs.New()
	if content, _ := fs.DownloadWithURL(context.Background(), goModPath); len(content) > 0 {
		if mod, _ := modfile.Parse(goModPath, content, nil); mod != nil {
			return mod.Module.Mod.Path
		}
	}
	return filepath.Base(filepath.Dir(goModPath))
}

func extractJSPackageName(packageJSONPath string) string {
	data, err := os.ReadFile(packageJSONPath)
	if err != nil {
		return filepath.Base(filepath.Dir(packageJSONPath))
	}
	nameRegex := regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(packageJSONPath))
	}
	return string(matches[1])
}

func extractGitProjectName(gitRoot, origin string) string {
	if origin != "" {
		origin = strings.TrimSuffix(origin, ".git")
		if idx := strings.LastIndexByte(origin, '/'); idx >= 0 && idx < len(origin)-1 {
			return origin[idx+1:]
		}
	}
	return filepath.Base(gitRoot)
}

// projectType identifies the type of project based on the marker file
func projectType(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "package.json":
		return "javascript"
	case "pom.xml":
		return "java"
	case "Cargo.toml":
		return "rust"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
