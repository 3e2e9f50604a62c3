package aqi

import (
	"fmt"
	"strings"
)

// Pollutant is a measured species reported with a reading.
type Pollutant string

const (
	PM25 Pollutant = "PM25"
	PM10 Pollutant = "PM10"
	NO2  Pollutant = "NO2"
	SO2  Pollutant = "SO2"
	CO   Pollutant = "CO"
	O3   Pollutant = "O3"
)

// AllPollutants returns the supported pollutant codes in display order.
func AllPollutants() []Pollutant {
	return []Pollutant{PM25, PM10, NO2, SO2, CO, O3}
}

var pollutantAliases = map[string]Pollutant{
	"pm25":  PM25,
	"pm2_5": PM25,
	"pm2.5": PM25,
	"pm10":  PM10,
	"no2":   NO2,
	"so2":   SO2,
	"co":    CO,
	"o3":    O3,
}

// ParsePollutant resolves a pollutant code, accepting upstream spellings
// such as "pm2_5".
func ParsePollutant(code string) (Pollutant, error) {
	if p, ok := pollutantAliases[strings.ToLower(strings.TrimSpace(code))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown pollutant %q", code)
}

// Reading is an AQI snapshot with its pollutant breakdown.
type Reading struct {
	Value      int                   `json:"value"`
	Pollutants map[Pollutant]float64 `json:"pollutants"`
}

// Band returns the health-risk band of the reading.
func (r Reading) Band() HealthRiskLevel {
	return Classify(float64(r.Value))
}
