package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id of each API request
const RequestIDHeader = "X-Request-ID"

// requestID tags every request with an id, keeping one supplied by the caller
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// logErrors logs failed requests only
func logErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if status := c.Writer.Status(); status >= 400 {
			log.Printf("⚠️ %s %s -> %d in %s (request %s)",
				c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond), c.GetString("request_id"))
		}
	}
}
