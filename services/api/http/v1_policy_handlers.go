package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/airsight/airsight/pkg/aqi"
	"github.com/airsight/airsight/pkg/policy"
	"github.com/airsight/airsight/pkg/sources"
)

type simulateRequest struct {
	BaselineAQI          *float64 `json:"baseline_aqi" binding:"omitempty,gte=0"`
	TrafficReductionPct  *float64 `json:"traffic_reduction_pct" binding:"required,gte=0,lte=100"`
	ConstructionHaltPct  *float64 `json:"construction_halt_pct" binding:"required,gte=0,lte=100"`
	IndustrialControlPct *float64 `json:"industrial_control_pct" binding:"required,gte=0,lte=100"`
}

// handleV1Simulate projects the AQI for a set of lever intensities
// POST /api/v1/policy/simulate
func (s *Server) handleV1Simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	baseline := s.cfg.BaselineAQI
	if req.BaselineAQI != nil {
		baseline = *req.BaselineAQI
	}

	res := policy.Simulate(baseline, policy.Input{
		TrafficReductionPct:  *req.TrafficReductionPct,
		ConstructionHaltPct:  *req.ConstructionHaltPct,
		IndustrialControlPct: *req.IndustrialControlPct,
	})

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"baseline_aqi":    res.BaselineAQI,
			"projected_aqi":   res.ProjectedAQI,
			"reduction_pct":   res.ReductionPct,
			"reduction_label": res.ReductionLabel(),
			"projected_band":  aqi.Classify(float64(res.ProjectedAQI)),
		},
	})
}

// handleV1Recommendations returns the policy catalog and its aggregate
// impact
// GET /api/v1/policy/recommendations
func (s *Server) handleV1Recommendations(c *gin.Context) {
	recs := policy.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"data": recs,
		"meta": gin.H{
			"count":        len(recs),
			"total_impact": policy.TotalImpact(recs),
		},
	})
}

type adviceRequest struct {
	AQI        *float64           `json:"aqi" binding:"required,gte=0"`
	Pollutants map[string]float64 `json:"pollutants" binding:"required"`
}

// handleV1Advice attributes a pollutant breakdown to sources and returns the
// matching actions
// POST /api/v1/policy/advice
func (s *Server) handleV1Advice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	pollutants, ok := parsePollutants(c, req.Pollutants)
	if !ok {
		return
	}

	contribution := sources.Attribute(pollutants)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"band":            aqi.Classify(*req.AQI),
			"contribution":    contribution,
			"recommendations": policy.Advise(*req.AQI, contribution),
		},
	})
}

type scenarioRequest struct {
	Pollutants      map[string]float64 `json:"pollutants" binding:"required"`
	ReductionFactor *float64           `json:"reduction_factor" binding:"required,gte=0,lte=1"`
}

// handleV1Scenario applies a uniform reduction to a pollutant breakdown
// POST /api/v1/policy/scenario
func (s *Server) handleV1Scenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	pollutants, ok := parsePollutants(c, req.Pollutants)
	if !ok {
		return
	}

	scaled := policy.ScaleConcentrations(pollutants, *req.ReductionFactor)
	data := gin.H{"pollutants": scaled}
	if pm, ok := scaled[aqi.PM25]; ok {
		value := aqi.FromPM25(pm)
		data["aqi"] = value
		data["category"] = aqi.CategoryOf(value)
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func parsePollutants(c *gin.Context, raw map[string]float64) (map[aqi.Pollutant]float64, bool) {
	out := make(map[aqi.Pollutant]float64, len(raw))
	for code, v := range raw {
		p, err := aqi.ParsePollutant(code)
		if err != nil {
			abortError(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
		if v < 0 {
			abortError(c, http.StatusBadRequest, "pollutant "+code+" must be non-negative")
			return nil, false
		}
		out[p] = v
	}
	return out, true
}
