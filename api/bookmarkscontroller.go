package api

import (
	"errors"
	"log"
	"net/http"

	"newsdesk/reader"

	"github.com/gin-gonic/gin"
)

// RegisterBookmarkRoutes registers bookmark endpoints.
func RegisterBookmarkRoutes(r *gin.Engine, ctl *reader.Controller) {
	g := r.Group("/api/bookmarks")
	g.GET("", handleListBookmarks(ctl))
	g.POST("", handleAddBookmark(ctl))
	g.DELETE("/:id", handleRemoveBookmark(ctl))
}

// AddBookmarkRequest bookmarks a loaded or searched article by id
type AddBookmarkRequest struct {
	ID string `json:"id" binding:"required"`
}

func handleListBookmarks(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookmarks := ctl.Store().State().Bookmarks
		c.JSON(http.StatusOK, gin.H{"count": len(bookmarks), "bookmarks": bookmarks})
	}
}

func handleAddBookmark(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddBookmarkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		existed := ctl.Store().State().IsBookmarked(req.ID)
		a, err := ctl.AddBookmark(c.Request.Context(), req.ID)
		if errors.Is(err, reader.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		status := http.StatusCreated
		if existed {
			status = http.StatusOK
		}
		c.JSON(status, bookmarkResponse(gin.H{"article": a}, err))
	}
}

func handleRemoveBookmark(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		err := ctl.RemoveBookmark(c.Request.Context(), id)
		if errors.Is(err, reader.ErrNotBookmarked) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, bookmarkResponse(gin.H{"removed": id}, err))
	}
}

// bookmarkResponse reports a persistence failure without failing the request;
// the bookmark change has already been applied in memory
func bookmarkResponse(body gin.H, persistErr error) gin.H {
	body["persisted"] = persistErr == nil
	if persistErr != nil {
		log.Printf("⚠️ Bookmark change not persisted: %v", persistErr)
		body["warning"] = persistErr.Error()
	}
	return body
}
