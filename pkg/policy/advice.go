package policy

import (
	"github.com/airsight/airsight/pkg/aqi"
	"github.com/airsight/airsight/pkg/sources"
)

type adviceRule struct {
	source    sources.Source
	threshold float64
	actions   []string
}

var sourceRules = []adviceRule{
	{sources.Dust, 30, []string{"Increase water sprinkling on roads", "Control construction activities"}},
	{sources.Vehicles, 30, []string{"Implement odd-even vehicle rule", "Increase public transport availability"}},
	{sources.Industry, 25, []string{"Inspect industrial emissions", "Temporary shutdown of non-compliant units"}},
	{sources.BiomassBurning, 20, []string{"Control stubble burning activities"}},
}

// EmergencyAQI is the level above which emergency measures are advised.
const EmergencyAQI = 300

// Advise lists actions for the given AQI and source shares.
func Advise(value float64, c sources.Contribution) []string {
	out := make([]string, 0)
	if value > EmergencyAQI {
		out = append(out, "Declare public health emergency", "Close schools temporarily")
	}
	for _, rule := range sourceRules {
		if c[rule.source] > rule.threshold {
			out = append(out, rule.actions...)
		}
	}
	return out
}

// ScaleConcentrations applies a uniform reduction factor to every pollutant
// and returns the result as a new map.
func ScaleConcentrations(values map[aqi.Pollutant]float64, factor float64) map[aqi.Pollutant]float64 {
	out := make(map[aqi.Pollutant]float64, len(values))
	for k, v := range values {
		out[k] = v * (1 - factor)
	}
	return out
}
