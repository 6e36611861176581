package formatter

import (
	"github.com/exthost-tools/cs-activity/internal/data/aggregator"
)

// SessionReport is the per-session result handed to the output formatters.
type SessionReport struct {
	Session string              `json:"session"`
	Path    string              `json:"path"`
	Buckets []aggregator.Bucket `json:"buckets"`
}

// Formatter renders session reports to the console.
type Formatter interface {
	Format(reports []SessionReport) error
}

// New returns the formatter for the given output format name, defaulting to
// the summary formatter.
func New(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "csv":
		return NewCSVFormatter()
	default:
		return NewSummaryFormatter()
	}
}
