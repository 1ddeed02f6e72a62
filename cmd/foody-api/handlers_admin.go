package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/httpx"
	"github.com/foody-app/foody-api/internal/live"
	"github.com/foody-app/foody-api/internal/stats"
)

// @Summary  Dashboard statistics (admin)
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Router   /api/stats/dashboard [get]
func dashboardHandler(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Dashboard(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"stats": d})
	}
}

// liveHandler upgrades staff connections to the order event stream.
func liveHandler(hub *live.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := hub.Serve(c.Writer, c.Request); err != nil {
			log.Printf("[ws] user=%s err=%v", httpx.UserID(c), err)
		}
	}
}
