package api

import (
	"net/http"

	"newsdesk/reader"

	"github.com/gin-gonic/gin"
)

// RegisterStateRoutes registers the state snapshot and its live stream
func RegisterStateRoutes(r *gin.Engine, ctl *reader.Controller) {
	g := r.Group("/api")
	g.GET("/state", handleGetState(ctl))
	g.GET("/stream", handleStream(ctl))
}

// handleGetState returns the current state and the recent action log
func handleGetState(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		online, visible := ctl.Presence()
		c.JSON(http.StatusOK, gin.H{
			"state":   ctl.Store().State(),
			"logs":    ctl.Store().Logs(),
			"online":  online,
			"visible": visible,
		})
	}
}
