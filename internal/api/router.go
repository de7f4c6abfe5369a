// Package api exposes the measures, the tariff library and lifecycle cost
// analysis over HTTP.
package api

import (
	"net/http"

	"energy-measures/internal/api/handlers"
	"energy-measures/internal/api/middleware"
	"energy-measures/internal/measure"
	"energy-measures/internal/tariff"

	"github.com/gin-gonic/gin"
)

// Options configures NewRouter.
type Options struct {
	Registry    *measure.Registry
	Tariffs     *tariff.Library
	ModelsDir   string
	CORSOrigins []string
}

func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	modelHandler := handlers.NewModelHandler(opts.ModelsDir)
	measureHandler := handlers.NewMeasureHandler(opts.Registry, modelHandler)
	tariffHandler := handlers.NewTariffHandler(opts.Tariffs)
	lccHandler := handlers.NewLCCHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/measures", measureHandler.ListMeasures)
		v1.GET("/measures/:name/arguments", measureHandler.GetArguments)
		v1.POST("/measures/:name/run", measureHandler.RunMeasure)

		v1.GET("/tariffs", tariffHandler.ListTariffs)
		v1.GET("/models", modelHandler.ListModels)

		v1.POST("/lcc", lccHandler.Analyze)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
