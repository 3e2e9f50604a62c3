package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := authMiddleware(s.deps.Tokens)

	api := s.engine.Group("/api")
	{
		api.POST("/login", s.handleLogin)

		secured := api.Group("", requireAuth)
		secured.GET("/me", s.handleMe)
		secured.GET("/live-aqi", s.handleLiveAQI)
		secured.GET("/forecast", s.handleForecast)
		secured.GET("/source-contribution", s.handleSourceContribution)
	}

	s.registerV1Routes(requireAuth)
}

// registerV1Routes sets up the v1 API groups:
// /api/v1/aqi, /api/v1/policy, /api/v1/stations, /api/v1/map, /api/v1/dashboard
func (s *Server) registerV1Routes(requireAuth gin.HandlerFunc) {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())

	// Banding is public: the legend is shown before login.
	bands := v1.Group("/aqi")
	{
		bands.GET("/bands", s.handleV1Bands)
		bands.GET("/classify", s.handleV1Classify)
	}

	secured := v1.Group("", requireAuth)

	secured.GET("/dashboard", s.handleV1Dashboard)

	policy := secured.Group("/policy")
	{
		policy.POST("/simulate", s.handleV1Simulate)
		policy.GET("/recommendations", s.handleV1Recommendations)
		policy.POST("/advice", s.handleV1Advice)
		policy.POST("/scenario", s.handleV1Scenario)
	}

	stations := secured.Group("/stations", s.requireStore())
	{
		stations.GET("", s.handleV1ListStations)
		stations.GET("/:id/readings", s.handleV1StationReadings)
		stations.GET("/:id/patterns", s.handleV1StationPatterns)
	}
	secured.GET("/map", s.requireStore(), s.handleV1Map)
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
