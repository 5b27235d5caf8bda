package timezone_test

import (
	"testing"
	"time"

	"nutrisur/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	assert.Equal(t, "America/Santiago", timezone.Load("America/Santiago").String())
	assert.Equal(t, time.UTC, timezone.Load(""))
	assert.Equal(t, time.UTC, timezone.Load("Mars/Olympus_Mons"))
}

func TestApplicationZone(t *testing.T) {
	loc := timezone.GetLocation()
	require.NotNil(t, loc)

	assert.Equal(t, loc, timezone.Now().Location())

	parsed, err := timezone.Parse("2006-01-02 15:04", "2025-06-02 17:30")
	require.NoError(t, err)
	assert.Equal(t, loc, parsed.Location())
	assert.Equal(t, "2025-06-02 17:30", timezone.Format(parsed, "2006-01-02 15:04"))

	utc := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	assert.True(t, utc.Equal(timezone.ToAppTime(utc)))
}
