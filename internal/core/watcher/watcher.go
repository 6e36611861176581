package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/exthost-tools/cs-activity/internal/core/model"
	"github.com/exthost-tools/cs-activity/internal/util"
)

// LogWatcher watches extension-host log files for changes.
type LogWatcher struct {
	watcher *fsnotify.Watcher
	events  chan model.FileEvent
}

// New creates a LogWatcher over the directories that contain the given log
// files. Sessions whose log directory does not exist yet are skipped.
func New(logPaths []string) (*LogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	lw := &LogWatcher{
		watcher: watcher,
		events:  make(chan model.FileEvent, 100),
	}

	for _, path := range logPaths {
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			util.LogWarn("Cannot watch " + filepath.Dir(path) + ": " + err.Error())
		}
	}

	go lw.processEvents()

	return lw, nil
}

func (lw *LogWatcher) processEvents() {
	for {
		select {
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}

			// Only the extension-host log itself is interesting.
			if filepath.Base(event.Name) != "exthost.log" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			lw.events <- model.FileEvent{
				Path:      event.Name,
				Operation: event.Op.String(),
			}

		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the change event stream.
func (lw *LogWatcher) Events() <-chan model.FileEvent {
	return lw.events
}

// Close stops the watcher.
func (lw *LogWatcher) Close() error {
	return lw.watcher.Close()
}
