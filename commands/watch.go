package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/exthost-tools/cs-activity/internal/analyzer"
	"github.com/exthost-tools/cs-activity/internal/core/watcher"
	"github.com/exthost-tools/cs-activity/internal/util"
)

// debounceWindow suppresses the event bursts editors and log writers produce.
const debounceWindow = time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-analyze sessions whenever their logs change",
	Long: `Runs the analysis once, then keeps watching every session's
extension-host log and re-analyzes a session when its log file changes.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}

	// Initial pass before watching.
	if err := a.Run(); err != nil {
		return err
	}

	sessions, err := a.Sessions()
	if err != nil {
		return fmt.Errorf("failed to scan log root: %w", err)
	}

	paths := make([]string, 0, len(sessions))
	for _, session := range sessions {
		paths = append(paths, session.LogPath)
	}

	lw, err := watcher.New(paths)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer lw.Close()

	util.LogInfo(fmt.Sprintf("Watching %d session logs, press Ctrl-C to stop", len(paths)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	lastRun := make(map[string]time.Time)

	for {
		select {
		case <-sigCh:
			util.LogInfo("Stopping watch")
			return nil

		case event, ok := <-lw.Events():
			if !ok {
				return nil
			}
			if time.Since(lastRun[event.Path]) < debounceWindow {
				continue
			}
			lastRun[event.Path] = time.Now()

			session := analyzer.SessionForPath(event.Path)
			util.LogDebug(fmt.Sprintf("Change on %s (%s), re-analyzing session %s",
				event.Path, event.Operation, session.ID))

			if err := a.AnalyzeSession(session); err != nil {
				util.LogWarn(fmt.Sprintf("Re-analysis of %s failed: %v", session.ID, err))
			}
		}
	}
}
