package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

// JSONFormatter emits the session reports as an indented JSON array.
type JSONFormatter struct {
	Writer io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Writer: os.Stdout}
}

func (f *JSONFormatter) Format(reports []SessionReport) error {
	data, err := sonic.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.Writer, string(data))
	return err
}
