package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsight/airsight/pkg/aqi"
)

func TestAttribute(t *testing.T) {
	c := Attribute(map[aqi.Pollutant]float64{
		aqi.PM25: 40,
		aqi.PM10: 30,
		aqi.NO2:  20,
		aqi.SO2:  10,
		aqi.CO:   0,
		aqi.O3:   999,
	})

	require.Len(t, c, 5)
	assert.Equal(t, 30.0, c[Dust])
	assert.Equal(t, 20.0, c[Vehicles])
	assert.Equal(t, 10.0, c[Industry])
	assert.Equal(t, 0.0, c[BiomassBurning])
	assert.Equal(t, 40.0, c[UrbanMixed])
}

func TestAttributeRounding(t *testing.T) {
	c := Attribute(map[aqi.Pollutant]float64{aqi.PM25: 1, aqi.PM10: 1, aqi.NO2: 1})
	assert.Equal(t, 33.33, c[Dust])
}

func TestAttributeZeroTotal(t *testing.T) {
	assert.Empty(t, Attribute(map[aqi.Pollutant]float64{aqi.O3: 12}))
	assert.Empty(t, Attribute(nil))
}

func TestTop(t *testing.T) {
	c := Attribute(map[aqi.Pollutant]float64{
		aqi.PM25: 156, aqi.PM10: 298, aqi.NO2: 82, aqi.SO2: 45, aqi.CO: 3.2,
	})
	src, share, ok := c.Top()
	require.True(t, ok)
	assert.Equal(t, Dust, src)
	assert.Greater(t, share, 50.0)

	_, _, ok = Contribution{}.Top()
	assert.False(t, ok)
}

func TestTopTieUsesFixedOrder(t *testing.T) {
	src, _, ok := Contribution{Industry: 50, Vehicles: 50}.Top()
	require.True(t, ok)
	assert.Equal(t, Vehicles, src)
}
