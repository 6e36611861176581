package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/exthost-tools/cs-activity/internal/util"
)

const bucketTimeLayout = "2006-01-02 15:04:05"

// SummaryFormatter prints each session as a centered banner followed by one
// line per histogram bucket.
type SummaryFormatter struct {
	Writer io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{Writer: os.Stdout}
}

// Format writes the banner and bucket lines for every session report.
func (f *SummaryFormatter) Format(reports []SessionReport) error {
	width := util.TerminalWidth()
	if width > util.DefaultBannerWidth {
		width = util.DefaultBannerWidth
	}

	for _, report := range reports {
		if _, err := fmt.Fprintln(f.Writer, util.Banner(report.Session, width)); err != nil {
			return err
		}
		for _, bucket := range report.Buckets {
			_, err := fmt.Fprintf(f.Writer, "%s : %d\n",
				bucket.Start.Format(bucketTimeLayout), bucket.Count)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
