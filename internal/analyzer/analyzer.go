package analyzer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/exthost-tools/cs-activity/internal/core/model"
	"github.com/exthost-tools/cs-activity/internal/data/aggregator"
	"github.com/exthost-tools/cs-activity/internal/data/scanner"
	"github.com/exthost-tools/cs-activity/internal/presentation/formatter"
	"github.com/exthost-tools/cs-activity/internal/render"
	"github.com/exthost-tools/cs-activity/internal/util"
)

// Chart kinds accepted by Config.Chart.
const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartBoth = "both"
	ChartNone = "none"
)

type Config struct {
	LogRoot      string
	Interval     time.Duration
	OutputFormat string
	Chart        string
	SaveDir      string
	DPI          int
	SkipLabels   int
	View         bool
}

type Analyzer struct {
	config     *Config
	scanner    *scanner.SessionScanner
	aggregator *aggregator.Aggregator
	renderer   *render.Renderer
}

func New(config *Config) (*Analyzer, error) {
	if config.Interval == 0 {
		config.Interval = aggregator.DefaultInterval
	}

	agg, err := aggregator.NewAggregator(config.Interval, util.GetTimeProvider().Location())
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:     config,
		scanner:    scanner.NewSessionScanner(config.LogRoot),
		aggregator: agg,
		renderer:   render.NewRenderer(config.DPI, config.SkipLabels, config.View),
	}, nil
}

// Sessions lists the session log files under the configured root.
func (a *Analyzer) Sessions() ([]model.Session, error) {
	return a.scanner.Scan()
}

// Run analyzes every session under the log root: aggregate, print, render.
// Per-session failures are reported and skipped; only an unusable log root
// aborts the run.
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogInfo("Starting analysis of extension-host activity...")

	scanStart := time.Now()
	sessions, err := a.scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan log root: %w", err)
	}
	util.LogDebug(fmt.Sprintf("Phase 1 - Session scan duration: %v, found %d sessions",
		time.Since(scanStart), len(sessions)))

	if len(sessions) == 0 {
		return fmt.Errorf("no session directories found under %s", a.config.LogRoot)
	}

	aggregateStart := time.Now()
	reports := make([]formatter.SessionReport, 0, len(sessions))
	failures := 0
	for _, session := range sessions {
		report, err := a.analyzeSession(session)
		if err != nil {
			failures++
			util.LogWarn(fmt.Sprintf("Skipping session %s: %v", session.ID, err))
			continue
		}
		reports = append(reports, report)
	}
	util.LogDebug(fmt.Sprintf("Phase 2 - Aggregation duration: %v, %d sessions ok, %d skipped",
		time.Since(aggregateStart), len(reports), failures))

	if len(reports) == 0 {
		return fmt.Errorf("no analyzable log files under %s", a.config.LogRoot)
	}

	outputStart := time.Now()
	err = formatter.New(a.config.OutputFormat).Format(reports)
	util.LogDebug(fmt.Sprintf("Phase 3 - Output duration: %v", time.Since(outputStart)))

	util.LogDebug(fmt.Sprintf("Total duration: %v", time.Since(startTime)))

	return err
}

// AnalyzeSession re-analyzes a single session and prints its report. Used by
// watch mode when a log file changes.
func (a *Analyzer) AnalyzeSession(session model.Session) error {
	report, err := a.analyzeSession(session)
	if err != nil {
		return err
	}
	return formatter.New(a.config.OutputFormat).Format([]formatter.SessionReport{report})
}

// analyzeSession aggregates one log file and renders its charts. Chart write
// failures are warnings: the histogram is still reported.
func (a *Analyzer) analyzeSession(session model.Session) (formatter.SessionReport, error) {
	hist, err := a.aggregator.AggregateFile(session.LogPath)
	if err != nil {
		return formatter.SessionReport{}, err
	}

	a.renderCharts(session, hist)

	return formatter.SessionReport{
		Session: session.ID,
		Path:    session.LogPath,
		Buckets: hist.Buckets(),
	}, nil
}

func (a *Analyzer) renderCharts(session model.Session, hist *aggregator.Histogram) {
	if a.config.Chart == ChartNone {
		return
	}

	basePath := filepath.Join(a.config.SaveDir, session.ID)

	if a.config.Chart == ChartBar || a.config.Chart == ChartBoth {
		if outPath, err := a.renderer.WriteBarChart(hist, basePath); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to write bar chart for %s: %v", session.ID, err))
		} else {
			util.LogInfo("Wrote " + outPath)
		}
	}

	if a.config.Chart == ChartLine || a.config.Chart == ChartBoth {
		if outPath, err := a.renderer.WriteLineChart(hist, basePath); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to write line chart for %s: %v", session.ID, err))
		} else {
			util.LogInfo("Wrote " + outPath)
		}
	}
}

// SessionForPath reconstructs the Session for a watched log file path. The
// session identifier is the grandparent directory of exthost.log.
func SessionForPath(logPath string) model.Session {
	return model.Session{
		ID:      filepath.Base(filepath.Dir(filepath.Dir(logPath))),
		LogPath: logPath,
	}
}
