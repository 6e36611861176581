package model

// Session identifies one code-server session log directory.
type Session struct {
	// ID is the name of the per-session directory under the log root.
	ID string `json:"id"`
	// LogPath is the absolute path to the extension-host log file.
	LogPath string `json:"logPath"`
}

// FileEvent describes a filesystem change on a watched log file.
type FileEvent struct {
	Path      string
	Operation string
}
