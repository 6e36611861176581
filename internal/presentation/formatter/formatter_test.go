package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exthost-tools/cs-activity/internal/data/aggregator"
)

func sampleReports() []SessionReport {
	return []SessionReport{
		{
			Session: "20210501T201001",
			Path:    "/logs/20210501T201001/extension-host/exthost.log",
			Buckets: []aggregator.Bucket{
				{Start: time.Date(2021, 5, 1, 21, 0, 0, 0, time.UTC), Count: 3},
				{Start: time.Date(2021, 5, 1, 21, 30, 0, 0, time.UTC), Count: 0},
				{Start: time.Date(2021, 5, 1, 22, 0, 0, 0, time.UTC), Count: 7},
			},
		},
	}
}

func TestSummaryFormatterBannerAndBuckets(t *testing.T) {
	var buf bytes.Buffer
	f := NewSummaryFormatter()
	f.Writer = &buf

	err := f.Format(sampleReports())

	require.NoError(t, err)
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "=20210501T201001=")
	assert.Equal(t, "2021-05-01 21:00:00 : 3", lines[1])
	assert.Equal(t, "2021-05-01 21:30:00 : 0", lines[2])
	assert.Equal(t, "2021-05-01 22:00:00 : 7", lines[3])
}

func TestSummaryFormatterEmptyReports(t *testing.T) {
	var buf bytes.Buffer
	f := NewSummaryFormatter()
	f.Writer = &buf

	require.NoError(t, f.Format(nil))
	assert.Empty(t, buf.String())
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()
	f.Writer = &buf

	err := f.Format(sampleReports())

	require.NoError(t, err)

	var decoded []SessionReport
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "20210501T201001", decoded[0].Session)
	require.Len(t, decoded[0].Buckets, 3)
	assert.Equal(t, 7, decoded[0].Buckets[2].Count)
}

func TestCSVFormatterRows(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter()
	f.Writer = &buf

	err := f.Format(sampleReports())

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "session,bucket_start,count", lines[0])
	assert.Equal(t, "20210501T201001,2021-05-01 21:00:00,3", lines[1])
	assert.Equal(t, "20210501T201001,2021-05-01 22:00:00,7", lines[3])
}

func TestNewSelectsFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, New("json"))
	assert.IsType(t, &CSVFormatter{}, New("csv"))
	assert.IsType(t, &SummaryFormatter{}, New("summary"))
	assert.IsType(t, &SummaryFormatter{}, New(""))
	assert.IsType(t, &SummaryFormatter{}, New("table"))
}
