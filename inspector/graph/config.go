package graph

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format selects the rendered graph output.
type Format string

const (
	FormatDot     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatBoth    Format = "both"
	FormatSummary Format = "summary"
)

// Config controls discovery, parsing and rendering.
type Config struct {
	// FileNames are base-name patterns recognized as Makefiles.
	FileNames []string `yaml:"fileNames,omitempty"`
	// SkipSourceDeps drops prerequisites that name source files rather than targets.
	SkipSourceDeps bool `yaml:"skipSourceDeps,omitempty"`
	// PhonyOnly restricts the graph to targets declared .PHONY.
	PhonyOnly bool `yaml:"phonyOnly,omitempty"`
	// Format selects the rendered output.
	Format Format `yaml:"format,omitempty" validate:"omitempty,oneof=dot mermaid both summary"`
	// HighlightCycles styles edges that take part in a detected cycle.
	HighlightCycles bool `yaml:"highlightCycles,omitempty"`
	// Concurrency bounds the per-file parse workers; 0 means one per CPU.
	Concurrency int `yaml:"concurrency,omitempty" validate:"gte=0"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		FileNames: []string{"Makefile", "makefile", "GNUmakefile", "*.mk"},
		Format:    FormatBoth,
	}
}

// LoadConfig reads and validates a YAML config file, filling unset fields
// with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	config.Init()
	return config, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Init fills unset fields with defaults.
func (c *Config) Init() {
	defaults := DefaultConfig()
	if len(c.FileNames) == 0 {
		c.FileNames = defaults.FileNames
	}
	if c.Format == "" {
		c.Format = defaults.Format
	}
}
