package aqi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		value float64
		want  Level
	}{
		{0, LevelLow},
		{50, LevelLow},
		{51, LevelModerate},
		{100, LevelModerate},
		{100.5, LevelHigh},
		{101, LevelHigh},
		{200, LevelHigh},
		{201, LevelSevere},
		{276, LevelSevere},
		{100000, LevelSevere},
		{-3, LevelLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.value).Level, "value %v", tc.value)
	}
}

func TestClassifyCoversIntegerLine(t *testing.T) {
	for v := 0; v <= 600; v++ {
		band := Classify(float64(v))
		matches := 0
		for _, l := range Levels() {
			if v >= l.Low && (l.Unbounded() || v <= l.High) {
				matches++
				assert.Equal(t, l.Level, band.Level, "value %d", v)
			}
		}
		require.Equal(t, 1, matches, "value %d matched %d bands", v, matches)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	assert.Equal(t, Classify(150), Classify(150))
}

func TestLevelsReturnsCopy(t *testing.T) {
	l := Levels()
	require.Len(t, l, 4)
	l[0].Level = "mutated"
	assert.Equal(t, LevelLow, Levels()[0].Level)
	assert.True(t, Levels()[3].Unbounded())
}

func TestSevereAdvisory(t *testing.T) {
	band := Reading{Value: 276}.Band()
	assert.Equal(t, "aqi-severe", band.Color)
	assert.Contains(t, band.Advisory, "Avoid outdoor activity")
}

func TestFromPM25(t *testing.T) {
	cases := map[float64]int{
		0:     50,
		30:    50,
		30.1:  100,
		60:    100,
		90:    150,
		120:   200,
		156:   300,
		250:   300,
		250.5: 400,
	}
	for pm, want := range cases {
		assert.Equal(t, want, FromPM25(pm), "pm2.5 %v", pm)
	}
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryGood, CategoryOf(50))
	assert.Equal(t, CategorySatisfactory, CategoryOf(100))
	assert.Equal(t, CategoryModerate, CategoryOf(200))
	assert.Equal(t, CategoryPoor, CategoryOf(300))
	assert.Equal(t, CategoryVeryPoor, CategoryOf(400))
	assert.Equal(t, CategorySevere, CategoryOf(401))
}

func TestParsePollutant(t *testing.T) {
	p, err := ParsePollutant("pm2_5")
	require.NoError(t, err)
	assert.Equal(t, PM25, p)

	p, err = ParsePollutant(" NO2 ")
	require.NoError(t, err)
	assert.Equal(t, NO2, p)

	_, err = ParsePollutant("nh3")
	assert.Error(t, err)
}
