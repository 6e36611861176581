package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVFormatter emits one row per histogram bucket.
type CSVFormatter struct {
	Writer io.Writer
}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{Writer: os.Stdout}
}

func (f *CSVFormatter) Format(reports []SessionReport) error {
	w := csv.NewWriter(f.Writer)
	defer w.Flush()

	headers := []string{"session", "bucket_start", "count"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, report := range reports {
		for _, bucket := range report.Buckets {
			record := []string{
				report.Session,
				bucket.Start.Format(bucketTimeLayout),
				fmt.Sprintf("%d", bucket.Count),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	return nil
}
