package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing-backend/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, pricingHandler *handlers.PricingHandler) {
	api := router.Group("")

	pricingRoutes := NewPricingRoutes(pricingHandler)
	pricingRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
