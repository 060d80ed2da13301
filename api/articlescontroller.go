package api

import (
	"net/http"
	"strings"

	"newsdesk/reader"

	"github.com/gin-gonic/gin"
)

// RegisterArticleRoutes registers article reading and search routes.
func RegisterArticleRoutes(r *gin.Engine, ctl *reader.Controller) {
	g := r.Group("/api")
	g.GET("/articles", handleListArticles(ctl))
	g.GET("/articles/:id", handleGetArticle(ctl))
	g.GET("/search", handleSearch(ctl))
}

func handleListArticles(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := ctl.Store().State()
		c.JSON(http.StatusOK, gin.H{
			"category": state.SelectedCategory,
			"loading":  state.IsLoading,
			"error":    state.Error,
			"articles": state.Articles,
		})
	}
}

// handleGetArticle looks the id up in the feed, the last search and the bookmarks
func handleGetArticle(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ctl.Article(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": reader.ErrArticleNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"article":    a,
			"bookmarked": ctl.Store().State().IsBookmarked(a.ID),
		})
	}
}

func handleSearch(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		results := ctl.Search(c.Request.Context(), query)
		c.JSON(http.StatusOK, gin.H{
			"query":   query,
			"count":   len(results),
			"results": results,
		})
	}
}
