package routes

import (
	"pricing-backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

type PricingRoutes struct {
	pricingHandler *handlers.PricingHandler
}

func NewPricingRoutes(pricingHandler *handlers.PricingHandler) *PricingRoutes {
	return &PricingRoutes{
		pricingHandler: pricingHandler,
	}
}

func (r *PricingRoutes) RegisterRoutes(router *gin.RouterGroup) {
	pricing := router.Group("/pricing-management")
	{
		pricing.GET("/sections", r.pricingHandler.Sections)
		pricing.GET("/custom/:name", r.pricingHandler.CustomRows)

		pricing.GET("/:tableKey", r.pricingHandler.ListRows)
		pricing.POST("/:tableKey", r.pricingHandler.CreateRow)
		pricing.PUT("/:tableKey/:id", r.pricingHandler.UpdateRow)
		pricing.DELETE("/:tableKey/:id", r.pricingHandler.DeactivateRow)
		pricing.PUT("/:tableKey/:id/restore", r.pricingHandler.RestoreRow)
	}
}
