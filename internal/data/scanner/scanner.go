package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/exthost-tools/cs-activity/internal/core/model"
	"github.com/exthost-tools/cs-activity/internal/util"
)

// ExthostLogRelPath is the fixed location of the extension-host log inside
// each session directory.
const ExthostLogRelPath = "extension-host/exthost.log"

// SessionScanner locates extension-host log files under a code-server log root.
type SessionScanner struct {
	rootDir string
}

// NewSessionScanner creates a new SessionScanner instance
func NewSessionScanner(rootDir string) *SessionScanner {
	return &SessionScanner{
		rootDir: rootDir,
	}
}

// Scan lists the session directories directly under the log root and resolves
// the expected extension-host log path for each entry. Entries are not
// filtered: a session with no log file yet still appears here and fails later
// when its file is opened.
func (s *SessionScanner) Scan() ([]model.Session, error) {
	start := time.Now()

	util.LogDebug(fmt.Sprintf("Start scanning log root: %s", s.rootDir))

	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return nil, fmt.Errorf("log root %s is not accessible: %w", s.rootDir, err)
	}

	sessions := make([]model.Session, 0, len(entries))
	for _, entry := range entries {
		sessions = append(sessions, model.Session{
			ID:      entry.Name(),
			LogPath: filepath.Join(s.rootDir, entry.Name(), ExthostLogRelPath),
		})
	}

	util.LogDebug(fmt.Sprintf("Log root scan completed: duration %v, found %d sessions",
		time.Since(start), len(sessions)))

	return sessions, nil
}
