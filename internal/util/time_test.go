package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeProviderSetTimezone(t *testing.T) {
	tp := &TimeProvider{}

	require.NoError(t, tp.SetTimezone("UTC"))
	assert.Equal(t, time.UTC, tp.Location())

	require.NoError(t, tp.SetTimezone("Asia/Shanghai"))
	assert.Equal(t, "Asia/Shanghai", tp.Location().String())
}

func TestTimeProviderInvalidTimezone(t *testing.T) {
	tp := &TimeProvider{}

	err := tp.SetTimezone("Not/AZone")

	assert.Error(t, err)
}

func TestTimeProviderLocalDefault(t *testing.T) {
	tp := &TimeProvider{}

	require.NoError(t, tp.SetTimezone("Local"))
	assert.Equal(t, time.Local, tp.Location())

	uninitialized := &TimeProvider{}
	assert.Equal(t, time.Local, uninitialized.Location())
}

func TestParseInLocation(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))

	ts, err := tp.ParseInLocation("2006-01-02 15:04:05.999999", "2021-05-01 21:10:30.781")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 5, 1, 21, 10, 30, 781000000, time.UTC), ts)
}
