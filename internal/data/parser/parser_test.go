package parser

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTimestampValidLine(t *testing.T) {
	line := "[2021-05-01 21:10:30.781] [exthost] [info] ExtensionService#loadCommonJSModule"

	ts, ok, err := ExtractTimestamp(line, time.UTC)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2021, 5, 1, 21, 10, 30, 781000000, time.UTC), ts)
}

func TestExtractTimestampMicrosecondPrecision(t *testing.T) {
	line := "[2021-05-01 21:10:30.781234] message"

	ts, ok, err := ExtractTimestamp(line, time.UTC)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2021, 5, 1, 21, 10, 30, 781234000, time.UTC), ts)
}

func TestExtractTimestampRoundTrip(t *testing.T) {
	timestamps := []time.Time{
		time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 5, 1, 21, 10, 30, 781000000, time.UTC),
		time.Date(2023, 12, 31, 23, 59, 59, 999999000, time.UTC),
		time.Date(2021, 1, 2, 3, 4, 5, 600000, time.UTC),
	}

	for _, want := range timestamps {
		t.Run(want.String(), func(t *testing.T) {
			line := fmt.Sprintf("[%s] trailing text", want.Format(LogTimeLayout))

			got, ok, err := ExtractTimestamp(line, time.UTC)

			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, got.Equal(want), "got %v, want %v", got, want)
		})
	}
}

func TestExtractTimestampNoPrefix(t *testing.T) {
	lines := []string{
		"no timestamp here",
		"",
		"2021-05-01 21:10:30.781 unbracketed",
		"    [2021-05-01 21:10:30.781] indented bracket does not count",
	}

	for _, line := range lines {
		ts, ok, err := ExtractTimestamp(line, time.UTC)

		require.NoError(t, err, "line %q must not error", line)
		assert.False(t, ok, "line %q must not yield a timestamp", line)
		assert.True(t, ts.IsZero())
	}
}

func TestExtractTimestampMalformed(t *testing.T) {
	lines := []string{
		"[exthost] no timestamp in first bracket",
		"[2021-13-01 21:10:30.781] bad month",
		"[2021-05-01] date only",
		"[not a date at all]",
	}

	for _, line := range lines {
		_, ok, err := ExtractTimestamp(line, time.UTC)

		require.Error(t, err, "line %q must be rejected", line)
		assert.False(t, ok)
	}
}

func TestExtractTimestampNoClosingBracket(t *testing.T) {
	_, ok, err := ExtractTimestamp("[2021-05-01 21:10:30.781 missing bracket", time.UTC)

	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "no closing bracket")
}

func TestExtractTimestampUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	ts, ok, err := ExtractTimestamp("[2021-05-01 21:10:30.781] text", loc)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, loc, ts.Location())
}
