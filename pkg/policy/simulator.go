// Package policy projects the effect of pollution-control levers on AQI and
// holds the static recommendation catalog.
package policy

import (
	"fmt"
	"math"
)

// Lever weights are each lever's maximum share of the baseline it can
// remove; damping scales all three uniformly.
const (
	TrafficWeight      = 0.45
	ConstructionWeight = 0.12
	IndustrialWeight   = 0.30
	Damping            = 0.3
)

// Input holds lever intensities in percent.
type Input struct {
	TrafficReductionPct  float64 `json:"traffic_reduction_pct"`
	ConstructionHaltPct  float64 `json:"construction_halt_pct"`
	IndustrialControlPct float64 `json:"industrial_control_pct"`
}

// Result is a projected AQI for a baseline and set of levers.
type Result struct {
	BaselineAQI  float64 `json:"baseline_aqi"`
	ProjectedAQI int     `json:"projected_aqi"`
	ReductionPct float64 `json:"reduction_pct"`
}

// ReductionLabel renders the reduction with one decimal place.
func (r Result) ReductionLabel() string {
	return fmt.Sprintf("%.1f", r.ReductionPct)
}

// Simulate projects the AQI after applying the levers to baseline. The
// projection never goes below zero and the reduction is zero for a
// non-positive baseline.
func Simulate(baseline float64, in Input) Result {
	traffic := in.TrafficReductionPct / 100 * TrafficWeight * baseline * Damping
	construction := in.ConstructionHaltPct / 100 * ConstructionWeight * baseline * Damping
	industrial := in.IndustrialControlPct / 100 * IndustrialWeight * baseline * Damping

	projected := int(math.Floor(baseline - traffic - construction - industrial + 0.5))
	if projected < 0 {
		projected = 0
	}

	res := Result{BaselineAQI: baseline, ProjectedAQI: projected}
	if baseline > 0 {
		pct := (baseline - float64(projected)) / baseline * 100
		res.ReductionPct = math.Round(pct*10) / 10
	}
	return res
}
