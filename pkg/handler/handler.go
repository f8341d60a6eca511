package handler

import (
	"burst_buy/pkg/middleware"
	"burst_buy/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type Handler struct {
	service *service.Service
	limiter *rate.Limiter
	origins []string
}

func NewHandler(service *service.Service, limiter *rate.Limiter, origins []string) *Handler {
	return &Handler{
		service: service,
		limiter: limiter,
		origins: origins,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  h.origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/views", middleware.RateLimit(h.limiter), h.CreateView)

		view := api.Group("/views/:id", middleware.ViewMiddleware(h.service.Purchase))
		{
			view.GET("", h.GetView)
			view.DELETE("", h.CloseView)
			view.PUT("/purchase", h.UpdatePurchase)
			view.GET("/quote", h.GetQuote)
			view.GET("/pay", h.Pay)
			view.GET("/suggestions", h.GetSuggestions)
			view.GET("/suggestions/stream", h.StreamSuggestions)
			view.POST("/events", h.DispatchEvent)
		}
	}
	return router
}
