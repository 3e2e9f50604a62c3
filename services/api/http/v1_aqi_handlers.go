package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/airsight/airsight/pkg/aqi"
)

// handleV1Bands returns the health-risk bands in ascending order
// GET /api/v1/aqi/bands
func (s *Server) handleV1Bands(c *gin.Context) {
	levels := aqi.Levels()
	c.JSON(http.StatusOK, gin.H{
		"data": levels,
		"meta": gin.H{"count": len(levels)},
	})
}

// handleV1Classify returns the band for an AQI value
// GET /api/v1/aqi/classify?value=276
func (s *Server) handleV1Classify(c *gin.Context) {
	raw := c.Query("value")
	if raw == "" {
		abortError(c, http.StatusBadRequest, "value is required")
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		abortError(c, http.StatusBadRequest, "value must be a non-negative number")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"value": value,
			"band":  aqi.Classify(value),
		},
	})
}
