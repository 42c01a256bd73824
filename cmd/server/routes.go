package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fuckinutkin/greenland/internal/interfaces/http/handlers"
	"github.com/fuckinutkin/greenland/internal/interfaces/http/middleware"
	"github.com/fuckinutkin/greenland/web"
)

type routeDeps struct {
	linkHandler    *handlers.LinkHandler
	supportHandler *handlers.SupportHandler
}

func buildRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(),
	)

	registerRoutes(r, d)
	return r
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "greenland up")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public check page and widget assets
	r.GET("/check", d.linkHandler.CheckPage)
	r.StaticFS("/static", http.FS(web.StaticFS()))

	api := r.Group("/api")
	{
		api.GET("/link", d.linkHandler.GetLink)

		support := api.Group("/support")
		{
			support.POST("/send", d.supportHandler.Send)
			support.GET("/poll", d.supportHandler.Poll)
		}
	}
}
