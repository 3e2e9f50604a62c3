package openweather

import (
	"fmt"
	"math"
	"time"

	"github.com/airsight/airsight/pkg/aqi"
)

// Coordinates locates a point of interest.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate rejects coordinates outside WGS84 bounds.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("invalid latitude %v", c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("invalid longitude %v", c.Lon)
	}
	return nil
}

// pollutionResponse models the air_pollution and air_pollution/forecast
// payloads.
type pollutionResponse struct {
	Coord Coordinates `json:"coord"`
	List  []entry     `json:"list"`
}

type entry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components Components `json:"components"`
	Dt         int64      `json:"dt"`
}

// Components are concentrations in µg/m³ as reported upstream.
type Components struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

func (c Components) validate() error {
	for name, v := range map[string]float64{
		"co": c.CO, "no": c.NO, "no2": c.NO2, "o3": c.O3,
		"so2": c.SO2, "pm2_5": c.PM25, "pm10": c.PM10, "nh3": c.NH3,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: negative %s", ErrInvalidPayload, name)
		}
	}
	return nil
}

// Observation is a validated point-in-time sample.
type Observation struct {
	Timestamp  time.Time  `json:"timestamp"`
	Components Components `json:"components"`
}

// Pollutants converts the components to dashboard units: CO in mg/m³
// (rounded to two decimals), everything else in µg/m³.
func (o Observation) Pollutants() map[aqi.Pollutant]float64 {
	return map[aqi.Pollutant]float64{
		aqi.PM25: o.Components.PM25,
		aqi.PM10: o.Components.PM10,
		aqi.NO2:  o.Components.NO2,
		aqi.SO2:  o.Components.SO2,
		aqi.CO:   math.Round(o.Components.CO/1000*100) / 100,
		aqi.O3:   o.Components.O3,
	}
}

// AQI returns the PM2.5-derived AQI of the observation.
func (o Observation) AQI() int {
	return aqi.FromPM25(o.Components.PM25)
}

func (e entry) observation() (Observation, error) {
	if e.Dt <= 0 {
		return Observation{}, fmt.Errorf("%w: missing dt", ErrInvalidPayload)
	}
	if err := e.Components.validate(); err != nil {
		return Observation{}, err
	}
	return Observation{
		Timestamp:  time.Unix(e.Dt, 0).UTC(),
		Components: e.Components,
	}, nil
}
