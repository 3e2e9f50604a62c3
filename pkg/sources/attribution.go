// Package sources attributes pollution to broad emission sources from a
// pollutant breakdown.
package sources

import (
	"math"

	"github.com/airsight/airsight/pkg/aqi"
)

// Source is an emission source category.
type Source string

const (
	Dust           Source = "Dust"
	Vehicles       Source = "Vehicles"
	Industry       Source = "Industry"
	BiomassBurning Source = "Biomass Burning"
	UrbanMixed     Source = "Urban Mixed"
)

// Order is the fixed source order used for output and tie-breaking.
var Order = []Source{Dust, Vehicles, Industry, BiomassBurning, UrbanMixed}

// tracer maps each source to the pollutant that stands in for it.
var tracer = map[Source]aqi.Pollutant{
	Dust:           aqi.PM10,
	Vehicles:       aqi.NO2,
	Industry:       aqi.SO2,
	BiomassBurning: aqi.CO,
	UrbanMixed:     aqi.PM25,
}

// Contribution holds percentage shares per source.
type Contribution map[Source]float64

// Attribute splits the combined PM2.5, PM10, NO2, SO2 and CO load into
// source shares rounded to two decimals. O3 is not attributed. A zero total
// yields an empty contribution.
func Attribute(p map[aqi.Pollutant]float64) Contribution {
	total := 0.0
	for _, src := range Order {
		total += p[tracer[src]]
	}
	if total == 0 {
		return Contribution{}
	}

	out := make(Contribution, len(Order))
	for _, src := range Order {
		out[src] = round2(p[tracer[src]] / total * 100)
	}
	return out
}

// Top returns the largest source share. ok is false for an empty
// contribution.
func (c Contribution) Top() (src Source, share float64, ok bool) {
	for _, s := range Order {
		v, present := c[s]
		if !present {
			continue
		}
		if !ok || v > share {
			src, share, ok = s, v, true
		}
	}
	return src, share, ok
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
