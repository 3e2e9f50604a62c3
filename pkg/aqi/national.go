package aqi

// Category is the six-level national AQI category reported alongside
// upstream readings.
type Category string

const (
	CategoryGood         Category = "Good"
	CategorySatisfactory Category = "Satisfactory"
	CategoryModerate     Category = "Moderate"
	CategoryPoor         Category = "Poor"
	CategoryVeryPoor     Category = "Very Poor"
	CategorySevere       Category = "Severe"
)

// FromPM25 converts a PM2.5 concentration (µg/m³) to a stepped AQI value.
func FromPM25(pm25 float64) int {
	switch {
	case pm25 <= 30:
		return 50
	case pm25 <= 60:
		return 100
	case pm25 <= 90:
		return 150
	case pm25 <= 120:
		return 200
	case pm25 <= 250:
		return 300
	default:
		return 400
	}
}

// CategoryOf returns the national category for an AQI value. Upper bounds
// are inclusive on this scale.
func CategoryOf(value int) Category {
	switch {
	case value <= 50:
		return CategoryGood
	case value <= 100:
		return CategorySatisfactory
	case value <= 200:
		return CategoryModerate
	case value <= 300:
		return CategoryPoor
	case value <= 400:
		return CategoryVeryPoor
	default:
		return CategorySevere
	}
}
