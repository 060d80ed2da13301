package api

import (
	"net/http"
	"time"

	"newsdesk/reader"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine exposing the reader over HTTP
func NewRouter(ctl *reader.Controller) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery, request ids, and logging of failed requests only
	r.Use(gin.Recovery(), requestID(), logErrors())

	RegisterHealthRoutes(r)
	RegisterStateRoutes(r, ctl)
	RegisterArticleRoutes(r, ctl)
	RegisterFeedRoutes(r, ctl)
	RegisterBookmarkRoutes(r, ctl)
	return r
}

// RegisterHealthRoutes registers the liveness endpoint
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().UTC()})
	})
}

// NewServer wraps the router in an http.Server listening on :port
func NewServer(port string, ctl *reader.Controller) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(ctl),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
