package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ykri.backend/internal/interfaces/http/handlers"
	"ykri.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler            *handlers.AuthHandler
	userHandler            *handlers.UserHandler
	demandHandler          *handlers.DemandHandler
	offerHandler           *handlers.OfferHandler
	proposalHandler        *handlers.ProposalHandler
	reservationHandler     *handlers.ReservationHandler
	messageHandler         *handlers.MessageHandler
	machineTemplateHandler *handlers.MachineTemplateHandler
	vipRequestHandler      *handlers.VIPRequestHandler
	authMiddleware         gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("", d.userHandler.List)
			users.GET("/search", d.userHandler.Search)
			users.GET("/nearby", d.userHandler.Nearby)
			users.GET("/:id", d.userHandler.Get)
			users.PATCH("/:id", d.userHandler.Update)
			users.DELETE("/:id", d.userHandler.Delete)
		}

		// Demand routes (protected)
		demands := v1.Group("/demands")
		demands.Use(d.authMiddleware)
		{
			demands.POST("", d.demandHandler.Create)
			demands.GET("", d.demandHandler.List)
			demands.GET("/:id", d.demandHandler.Get)
			demands.PATCH("/:id", d.demandHandler.Update)
			demands.DELETE("/:id", d.demandHandler.Delete)
			demands.GET("/:id/contract", d.demandHandler.Contract)
		}

		// Offer routes (protected)
		offers := v1.Group("/offers")
		offers.Use(d.authMiddleware)
		{
			offers.POST("", d.offerHandler.Create)
			offers.GET("", d.offerHandler.List)
			offers.GET("/:id", d.offerHandler.Get)
			offers.PATCH("/:id", d.offerHandler.Update)
			offers.DELETE("/:id", d.offerHandler.Delete)
			offers.GET("/:id/availability", d.offerHandler.Availability)
			offers.GET("/:id/contract", d.offerHandler.Contract)
		}

		// Proposal routes (protected)
		proposals := v1.Group("/proposals")
		proposals.Use(d.authMiddleware)
		{
			proposals.POST("", d.proposalHandler.Create)
			proposals.GET("", d.proposalHandler.List)
			proposals.GET("/:id", d.proposalHandler.Get)
			proposals.PATCH("/:id", d.proposalHandler.Decide)
		}

		// Reservation routes (protected)
		reservations := v1.Group("/reservations")
		reservations.Use(d.authMiddleware)
		{
			reservations.POST("", d.reservationHandler.Create)
			reservations.GET("", d.reservationHandler.List)
			reservations.GET("/:id", d.reservationHandler.Get)
			reservations.PATCH("/:id", d.reservationHandler.Transition)
			reservations.GET("/:id/contract", d.reservationHandler.Contract)
		}

		// Message routes (protected)
		messages := v1.Group("/messages")
		messages.Use(d.authMiddleware)
		{
			messages.POST("", d.messageHandler.Send)
			messages.GET("", d.messageHandler.List)
			messages.GET("/conversations", d.messageHandler.Conversations)
			messages.GET("/conversation/:userId", d.messageHandler.Conversation)
			messages.PATCH("/:id/read", d.messageHandler.MarkRead)
		}

		// Machine template routes (reads for everyone, writes admin only)
		templates := v1.Group("/machine-templates")
		templates.Use(d.authMiddleware)
		{
			templates.GET("", d.machineTemplateHandler.List)
			templates.GET("/:id", d.machineTemplateHandler.Get)
			templates.POST("", middleware.RequireAdmin(), d.machineTemplateHandler.Create)
			templates.PATCH("/:id", middleware.RequireAdmin(), d.machineTemplateHandler.Update)
			templates.DELETE("/:id", middleware.RequireAdmin(), d.machineTemplateHandler.Delete)
		}

		// VIP upgrade request routes (protected, resolution admin only)
		vipRequests := v1.Group("/vip-requests")
		vipRequests.Use(d.authMiddleware)
		{
			vipRequests.POST("", d.vipRequestHandler.Create)
			vipRequests.GET("", d.vipRequestHandler.List)
			vipRequests.POST("/:id/resolve", middleware.RequireAdmin(), d.vipRequestHandler.Resolve)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Session-ID, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "ykri-backend",
			"version": "0.3.0",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
