package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter creates the gin engine with all simulation routes
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	SetupRoutes(router, handler)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.POST("/simulations", handler.RunSimulation)
		api.POST("/simulations/batch", handler.RunSimulationBatch)
		api.GET("/simulations", handler.GetSimulations)
		api.GET("/simulations/:id", handler.GetSimulation)
		api.DELETE("/simulations/:id", handler.DeleteSimulation)
		api.GET("/scenario/default", handler.GetDefaultScenario)
	}
}
