package parser

import (
	"fmt"
	"strings"
	"time"
)

// LogTimeLayout matches the bracketed prefix written by the extension host,
// e.g. "[2021-05-01 21:10:30.781] [exthost] [info] ...". The fractional part
// carries up to microsecond precision.
const LogTimeLayout = "2006-01-02 15:04:05.999999"

// ExtractTimestamp parses the leading bracketed timestamp of a log line.
//
// Lines that do not start with "[" carry no timestamp: ok is false and err is
// nil. Lines that do start with "[" must contain a closing "]" and a
// timestamp in LogTimeLayout; anything else is a parse error.
func ExtractTimestamp(line string, loc *time.Location) (ts time.Time, ok bool, err error) {
	if !strings.HasPrefix(line, "[") {
		return time.Time{}, false, nil
	}

	end := strings.Index(line, "]")
	if end < 0 {
		return time.Time{}, false, fmt.Errorf("malformed timestamp prefix: no closing bracket in %q", truncateLine(line))
	}

	raw := line[1:end]
	ts, err = time.ParseInLocation(LogTimeLayout, raw, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed timestamp %q: %w", raw, err)
	}

	return ts, true, nil
}

// truncateLine keeps error messages readable for very long lines.
func truncateLine(line string) string {
	const max = 64
	if len(line) <= max {
		return line
	}
	return line[:max] + "..."
}
