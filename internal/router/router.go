package router

import (
	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/config"
	"github.com/blues/sps/internal/handler"
	"github.com/blues/sps/internal/notify"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, clk clock.Clock, notifier notify.Notifier, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "solidarity-pot-service",
		})
	})

	v1 := r.Group("/api/v1")
	v1.Use(handler.Authenticate(cfg.Auth.JWTSecret))
	{
		potHandler := handler.NewPotHandler(db, clk)
		propositionHandler := handler.NewPropositionHandler(db, clk)
		offerHandler := handler.NewOfferHandler(db, clk, notifier)
		requestHandler := handler.NewRequestHandler(db)

		pots := v1.Group("/pots")
		{
			pots.GET("", potHandler.GetPots)
			pots.GET("/:slug", potHandler.GetPot)
			pots.GET("/:slug/stats", potHandler.GetPotStats)
			pots.GET("/:slug/requests", requestHandler.ListPotRequests)

			auth := pots.Group("")
			auth.Use(handler.RequireAuth())
			{
				auth.POST("", potHandler.CreatePot)
				auth.DELETE("/:slug", potHandler.DeletePot)
				auth.POST("/:slug/propositions", propositionHandler.CreateProposition)
				auth.POST("/:slug/requests", requestHandler.CreateRequest)
			}
		}

		propositions := v1.Group("/propositions")
		{
			propositions.GET("/:slug", propositionHandler.GetProposition)

			auth := propositions.Group("")
			auth.Use(handler.RequireAuth())
			{
				auth.POST("/:slug/offers", offerHandler.SubmitOffer)
				auth.DELETE("/:slug", propositionHandler.DeleteProposition)
			}
		}

		offers := v1.Group("/offers")
		offers.Use(handler.RequireAuth())
		{
			offers.GET("/:id", offerHandler.GetOffer)
			offers.POST("/:id/accept", offerHandler.AcceptOffer)
			offers.POST("/:id/reject", offerHandler.RejectOffer)
			offers.POST("/:id/pay", offerHandler.MarkOfferPaid)
		}

		requests := v1.Group("/requests")
		requests.Use(handler.RequireAuth())
		{
			requests.DELETE("/:id", requestHandler.DeleteRequest)
		}

		me := v1.Group("/me")
		me.Use(handler.RequireAuth())
		{
			me.GET("/offers", offerHandler.ListMyOffers)
			me.GET("/propositions", propositionHandler.ListMyPropositions)
		}
	}

	return r
}

// CORS middleware
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
