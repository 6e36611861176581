package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openInViewer hands the written chart to the platform's default opener.
func openInViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch viewer: %w", err)
	}

	// Detach; the viewer outlives the analysis run.
	go cmd.Wait()

	return nil
}
