package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/viant/makegraph/analyzer"
	"github.com/viant/makegraph/inspector/graph"
)

type CLI struct {
	Root            string `arg:"" optional:"" default:"." help:"Root directory to scan for Makefiles."`
	Format          string `short:"f" enum:",dot,mermaid,both,summary" default:"" help:"Output format (dot, mermaid, both, summary; default both)."`
	NoSrc           bool   `help:"Exclude source-file prerequisites from the graph."`
	PhonyOnly       bool   `short:"p" help:"Only include targets declared .PHONY."`
	HighlightCycles bool   `help:"Style edges that take part in a detected cycle."`
	Config          string `short:"c" type:"path" help:"YAML config file; flags override its settings."`
	Concurrency     int    `help:"Parse worker bound; 0 means one per CPU."`
	Verbose         bool   `short:"v" help:"Enable verbose logging."`
}

func (c *CLI) Run() error {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config, err := c.buildConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("analyzing", "root", c.Root, "format", config.Format)
	report, err := analyzer.New(analyzer.WithConfig(config)).AnalyzeDir(ctx, c.Root)
	if err != nil {
		return err
	}
	for _, warning := range report.Warnings {
		slog.Warn(warning.String())
	}
	return render(os.Stdout, report, config)
}

// buildConfig merges the optional config file with command line flags; flags
// win.
func (c *CLI) buildConfig() (*graph.Config, error) {
	config := graph.DefaultConfig()
	if c.Config != "" {
		loaded, err := graph.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if c.Format != "" {
		config.Format = graph.Format(c.Format)
	}
	if c.NoSrc {
		config.SkipSourceDeps = true
	}
	if c.PhonyOnly {
		config.PhonyOnly = true
	}
	if c.HighlightCycles {
		config.HighlightCycles = true
	}
	if c.Concurrency > 0 {
		config.Concurrency = c.Concurrency
	}
	return config, nil
}

func render(w io.Writer, report *analyzer.Report, config *graph.Config) error {
	banner(w, "MAKEFILE CALL GRAPH ANALYSIS")
	summary, err := report.Summary().Marshal()
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if _, err := w.Write(summary); err != nil {
		return err
	}

	if config.Format == graph.FormatDot || config.Format == graph.FormatBoth {
		banner(w, "GRAPHVIZ DOT FORMAT")
		out, err := (&analyzer.DotRenderer{HighlightCycles: config.HighlightCycles}).Render(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	}
	if config.Format == graph.FormatMermaid || config.Format == graph.FormatBoth {
		banner(w, "MERMAID FORMAT")
		out, err := (&analyzer.MermaidRenderer{HighlightCycles: config.HighlightCycles}).Render(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	}
	return nil
}

func banner(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n%s\n", strings.Repeat("=", 80), title, strings.Repeat("=", 80))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(
		cli,
		kong.Name("makegraph"),
		kong.Description("Analyze a tree of Makefiles into a target call graph, detect circular dependencies and render DOT or Mermaid output."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
