// plceye analyzes PLC project files (Rockwell L5X exports or vendor-
// neutral PLCopen XML) and reports code smells: unused tags, undefined
// tag references, and empty routines.
//
// Usage:
//
//	plceye [flags] <file>...
//	plceye init
//	plceye stats <file>...
//	plceye graph <file> [-o out.svg]
//
// Examples:
//
//	plceye MainController.L5X                 # analyze one file
//	plceye -s warning *.L5X                    # only warning/error findings
//	plceye -c custom.toml Project.xml          # explicit config
//	plceye init                                # write a default plceye.toml
//	plceye stats MainController.L5X            # print parse statistics
//	plceye graph MainController.L5X -o g.svg   # render a call graph
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/radevgit/plceye/internal/config"
	"github.com/radevgit/plceye/internal/graph"
	"github.com/radevgit/plceye/internal/layout"
	"github.com/radevgit/plceye/internal/limits"
	"github.com/radevgit/plceye/internal/loader"
	"github.com/radevgit/plceye/internal/report"
	"github.com/radevgit/plceye/internal/smells"
	"github.com/radevgit/plceye/internal/svgout"
	"github.com/radevgit/plceye/internal/xref"
)

const configFileName = "plceye.toml"

var (
	configPath string
	severity   string
	graphOut   string
	logger     *zap.Logger
)

func main() {
	os.Exit(run())
}

// run builds and executes the root command, returning the process exit
// code directly rather than through cobra's own error path: the three
// exit codes (0 clean, 1 findings-at-threshold, 2 load/parse failures)
// don't fit cobra's single success/failure split.
func run() int {
	var exitCode int

	rootCmd := &cobra.Command{
		Use:     "plceye <file>...",
		Short:   "PLC code smell detector for L5X and PLCopen files",
		Version: "0.1.0",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("severity") {
				severity = ""
			}
			exitCode = runAnalyze(args)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default: plceye.toml if present)")
	rootCmd.PersistentFlags().StringVarP(&severity, "severity", "s", "info", "minimum severity to report: info, warning, error")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "generate a default plceye.toml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runInit()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "stats <file>...",
		Short: "print parse statistics for one or more project files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runStats(args)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	})

	graphCmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "render a project's structural/call graph as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runGraph(args[0], graphOut)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	graphCmd.Flags().StringVarP(&graphOut, "output", "o", "", "output SVG path (default: stdout)")
	rootCmd.AddCommand(graphCmd)

	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

func runAnalyze(files []string) int {
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input files specified")
		fmt.Fprintln(os.Stderr, "Usage: plceye <FILE>...")
		fmt.Fprintln(os.Stderr, "Try 'plceye --help' for more information.")
		return 1
	}

	cfg, ok := loadConfig()
	if !ok {
		return 1
	}
	if severity != "" {
		cfg.General.MinSeverity = severity
	}

	minSeverity, ok := report.ParseSeverity(cfg.General.MinSeverity)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid severity %q\n", cfg.General.MinSeverity)
		return 1
	}

	type fileReport struct {
		path string
		rep  *report.Report
	}
	var all []fileReport
	hasErrors := false

	for _, path := range files {
		rep, err := analyzeFile(path, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", path, err)
			logger.Warn("file analysis failed", zap.String("path", path), zap.Error(err))
			hasErrors = true
			continue
		}
		all = append(all, fileReport{path: path, rep: rep})
	}

	totalIssues := 0
	for _, fr := range all {
		totalIssues += len(fr.rep.FilterBySeverity(minSeverity))
	}

	for _, fr := range all {
		filtered := fr.rep.FilterBySeverity(minSeverity)
		if len(filtered) == 0 {
			continue
		}
		fmt.Printf("\n=== %s ===\n", fr.path)
		for _, f := range filtered {
			fmt.Println(f.String())
		}
	}

	fmt.Println()
	if totalIssues == 0 {
		fmt.Printf("No issues found in %d file(s).\n", len(files))
	} else {
		fmt.Printf("Found %d issue(s) in %d file(s).\n", totalIssues, len(files))
	}

	switch {
	case hasErrors:
		return 2
	case totalIssues > 0:
		return 1
	default:
		return 0
	}
}

// loadConfig resolves the effective configuration: an explicit
// --config path (fatal on error), else plceye.toml if present (a parse
// failure falls back to defaults with a warning, not a fatal error),
// else the built-in defaults. The bool return is false only for the
// explicit-path fatal case.
func loadConfig() (config.RuleConfig, bool) {
	if configPath != "" {
		cfg, err := config.FromFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return config.RuleConfig{}, false
		}
		return cfg, true
	}
	if _, err := os.Stat(configFileName); err == nil {
		cfg, err := config.FromFile(configFileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", configFileName, err)
			logger.Warn("falling back to default configuration", zap.Error(err))
			return config.Default(), true
		}
		return cfg, true
	}
	return config.Default(), true
}

func analyzeFile(path string, cfg config.RuleConfig) (*report.Report, error) {
	lp, err := loader.FromFile(path)
	if err != nil {
		return nil, err
	}
	tracker := limits.NewTracker(limits.Default())

	var result *xref.CrossRefResult
	if lp.Controller != nil {
		result = xref.AnalyzeController(lp.Controller, tracker)
	} else {
		result = xref.AnalyzeProject(lp.Project, tracker)
	}
	return smells.Detect(result, cfg), nil
}

// runStats loads each file and prints its xref.Stats counters — the
// POU/routine/ST-routine/rung/parse-error counts spec.md's distillation dropped
// but the original ships as analysis::ParseStats/PlcopenStats.
func runStats(files []string) int {
	hasErrors := false
	for _, path := range files {
		lp, err := loader.FromFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", path, err)
			logger.Warn("file analysis failed", zap.String("path", path), zap.Error(err))
			hasErrors = true
			continue
		}
		tracker := limits.NewTracker(limits.Default())
		var result *xref.CrossRefResult
		if lp.Controller != nil {
			result = xref.AnalyzeController(lp.Controller, tracker)
		} else {
			result = xref.AnalyzeProject(lp.Project, tracker)
		}
		s := result.Stats
		fmt.Printf("\n=== %s (%s) ===\n", path, result.SourceFormat)
		fmt.Printf("POUs:            %d\n", s.PouCount)
		fmt.Printf("Routines:        %d\n", s.RoutineCount)
		fmt.Printf("ST routines:     %d\n", s.STRoutineCount)
		fmt.Printf("Rungs:           %d\n", s.RungCount)
		fmt.Printf("Parse errors:    %d\n", s.ParseErrorCount)
	}
	if hasErrors {
		return 2
	}
	return 0
}

// runGraph loads path, builds its structural/call graph, lays it out
// hierarchically and writes the resulting SVG to out (stdout if out is
// empty).
func runGraph(path, out string) int {
	lp, err := loader.FromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		return 2
	}

	tracker := limits.NewTracker(limits.Default())
	g := graph.Build(lp, tracker)

	l := layout.NewHierarchicalLayout()
	l.Apply(g)
	width, height := l.Dimensions(g)

	svg := svgout.NewSvgBuilder(width, height).
		WithDefaultArrows().
		WithDefaultStyles()

	for _, e := range g.Edges {
		from := g.GetNode(e.From)
		to := g.GetNode(e.To)
		if from == nil || to == nil {
			continue
		}
		x1, y1 := from.Bottom()
		x2, y2 := to.Top()
		svg.Add(svgout.ArrowEdgeCurved(x1, y1, x2, y2, "arrow"))
	}
	for _, n := range g.Nodes {
		svg.Add(svgout.NodeBox(n.X, n.Y, n.Width, n.Height, n.Label))
	}

	doc := svg.Build()
	if out == "" {
		fmt.Println(doc)
		return 0
	}
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
		return 1
	}
	fmt.Printf("Wrote %s\n", out)
	return 0
}

func runInit() int {
	if _, err := os.Stat(configFileName); err == nil {
		fmt.Fprintln(os.Stderr, "Error: plceye.toml already exists")
		return 1
	}
	if err := os.WriteFile(configFileName, []byte(config.DefaultTOML()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing plceye.toml: %v\n", err)
		return 1
	}
	fmt.Println("Created plceye.toml with default configuration")
	return 0
}
