package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/exthost-tools/cs-activity/internal/analyzer"
	"github.com/exthost-tools/cs-activity/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	logRoot string

	// Aggregation
	interval time.Duration

	// Output related
	outputFormat string
	timezone     string

	// Chart related
	chartKind  string
	saveDir    string
	dpi        int
	skipLabels int
	view       bool

	// Config file
	configFile string

	rootCmd = &cobra.Command{
		Use:   "cs-activity [flags]",
		Short: "code-server extension-host activity analyzer",
		Long: `cs-activity analyzes code-server extension-host logs.

It lists the per-session directories under the log root, buckets each log
line's timestamp into fixed-width intervals, prints the per-bucket activity
counts, and renders bar or line charts per session.

Examples:
  cs-activity                                  # Analyze with default settings
  cs-activity --dir /path/to/code-server/logs  # Analyze specified log root
  cs-activity --interval 15m --chart both      # 15-minute buckets, bar and line charts
  cs-activity --output json                    # Print histograms as JSON
  cs-activity --dpi 300 --save-dir ./charts    # Larger charts into ./charts
  cs-activity watch                            # Re-analyze whenever a log changes`,
		RunE:          runAnalyze,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

const (
	defaultLogFile = "~/.cs-activity/logs/app.log"
	defaultLogRoot = "~/.local/share/code-server/logs"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&logRoot, "dir", defaultLogRoot,
		"code-server log root directory (one subdirectory per session)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file path (default: .cs-activity.yaml in CWD or $HOME)")

	// Aggregation
	rootCmd.PersistentFlags().DurationVarP(&interval, "interval", "i", 30*time.Minute,
		"Histogram bucket width (e.g., 30m, 1h, 90s)")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (summary, json, csv)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for parsing log timestamps (e.g., Asia/Shanghai, UTC)")

	// Chart configuration
	rootCmd.PersistentFlags().StringVar(&chartKind, "chart", "line",
		"Chart kind to render (bar, line, both, none)")
	rootCmd.PersistentFlags().StringVar(&saveDir, "save-dir", ".",
		"Directory for rendered chart files")
	rootCmd.PersistentFlags().IntVar(&dpi, "dpi", 200,
		"Chart resolution; the canvas is a 6.4x4.8 inch figure at this dpi")
	rootCmd.PersistentFlags().IntVar(&skipLabels, "skip-labels", 2,
		"Show every Nth bar chart x-axis label")
	rootCmd.PersistentFlags().BoolVar(&view, "view", false,
		"Open rendered charts with the system viewer")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}
	return a.Run()
}

// buildConfig merges the config file, environment, and command line flags
// (flags win), then initializes logging and the time provider.
func buildConfig(cmd *cobra.Command) (*analyzer.Config, error) {
	fileCfg, err := LoadFileConfig(expandPath(configFile))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if !flags.Changed("dir") {
		logRoot = fileCfg.Dir
	}
	if !flags.Changed("interval") {
		interval = fileCfg.Interval
	}
	if !flags.Changed("output") {
		outputFormat = fileCfg.Output
	}
	if !flags.Changed("chart") {
		chartKind = fileCfg.Chart
	}
	if !flags.Changed("save-dir") {
		saveDir = fileCfg.SaveDir
	}
	if !flags.Changed("dpi") {
		dpi = fileCfg.DPI
	}
	if !flags.Changed("skip-labels") {
		skipLabels = fileCfg.SkipLabels
	}
	if !flags.Changed("timezone") {
		timezone = fileCfg.Timezone
	}
	if !flags.Changed("view") {
		view = fileCfg.View
	}

	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, err
	}

	if err := ensureDir(expandPath(saveDir)); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	return &analyzer.Config{
		LogRoot:      expandPath(logRoot),
		Interval:     interval,
		OutputFormat: outputFormat,
		Chart:        chartKind,
		SaveDir:      expandPath(saveDir),
		DPI:          dpi,
		SkipLabels:   skipLabels,
		View:         view,
	}, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
