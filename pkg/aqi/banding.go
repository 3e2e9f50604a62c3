// Package aqi classifies AQI values into health-risk bands and derives AQI
// from pollutant concentrations.
package aqi

// Level names a health-risk band.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelSevere   Level = "Severe"
)

// HealthRiskLevel describes one band of the health-risk index.
type HealthRiskLevel struct {
	Level       Level  `json:"level"`
	Low         int    `json:"low"`
	High        int    `json:"high,omitempty"` // 0 means unbounded
	Range       string `json:"range"`
	Description string `json:"description"`
	Groups      string `json:"groups"`
	Color       string `json:"color"`
	Advisory    string `json:"advisory"`
}

// Unbounded reports whether the band has no upper limit.
func (h HealthRiskLevel) Unbounded() bool {
	return h.High == 0
}

var levels = [...]HealthRiskLevel{
	{
		Level:       LevelLow,
		Low:         0,
		High:        50,
		Range:       "0–50",
		Description: "Air quality is satisfactory",
		Groups:      "None",
		Color:       "aqi-good",
		Advisory:    "Air quality is good. Enjoy outdoor activities.",
	},
	{
		Level:       LevelModerate,
		Low:         51,
		High:        100,
		Range:       "51–100",
		Description: "Acceptable air quality",
		Groups:      "Unusually sensitive individuals",
		Color:       "aqi-moderate",
		Advisory:    "Unusually sensitive people should consider limiting prolonged outdoor exertion.",
	},
	{
		Level:       LevelHigh,
		Low:         101,
		High:        200,
		Range:       "101–200",
		Description: "Health effects for sensitive groups",
		Groups:      "Children, Elderly, Asthma patients",
		Color:       "aqi-unhealthy",
		Advisory:    "Sensitive groups should reduce outdoor activity and keep medication at hand.",
	},
	{
		Level:       LevelSevere,
		Low:         201,
		Range:       "201+",
		Description: "Serious health effects for everyone",
		Groups:      "All residents, especially Children & Elderly",
		Color:       "aqi-severe",
		Advisory:    "Health alert: everyone may experience serious health effects. Avoid outdoor activity.",
	},
}

// Levels returns the four bands in ascending order.
func Levels() []HealthRiskLevel {
	out := make([]HealthRiskLevel, len(levels))
	copy(out, levels[:])
	return out
}

// Classify returns the band for an AQI value. Band edges belong to the lower
// band: 100 is Moderate and 200 is High.
func Classify(value float64) HealthRiskLevel {
	switch {
	case value > 200:
		return levels[3]
	case value > 100:
		return levels[2]
	case value > 50:
		return levels[1]
	default:
		return levels[0]
	}
}
