package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDetect(t *testing.T) {
	p, err := Detect([]Sample{
		{day(2024, time.January, 1), 300},
		{day(2024, time.January, 2), 340},
		{day(2024, time.July, 1), 80},
		{day(2024, time.July, 2), 100},
		{day(2023, time.November, 4), 410},
	})
	require.NoError(t, err)

	assert.Equal(t, time.November, p.WorstMonth)
	assert.Equal(t, time.July, p.BestMonth)
	assert.Equal(t, 320.0, p.MonthlyAverage[time.January])
	assert.Equal(t, 90.0, p.MonthlyAverage[time.July])
	assert.Len(t, p.MonthlyAverage, 3)
}

func TestDetectTiesPickEarliestMonth(t *testing.T) {
	p, err := Detect([]Sample{
		{day(2024, time.March, 1), 150},
		{day(2024, time.February, 1), 150},
	})
	require.NoError(t, err)
	assert.Equal(t, time.February, p.WorstMonth)
	assert.Equal(t, time.February, p.BestMonth)
}

func TestDetectEmpty(t *testing.T) {
	_, err := Detect(nil)
	assert.ErrorIs(t, err, ErrNoSamples)
}
