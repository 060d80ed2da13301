package api

import (
	"errors"
	"net/http"

	"newsdesk/reader"
	"newsdesk/types"

	"github.com/gin-gonic/gin"
)

// RegisterFeedRoutes registers category selection, refresh and presence routes.
func RegisterFeedRoutes(r *gin.Engine, ctl *reader.Controller) {
	g := r.Group("/api")
	g.GET("/categories", handleListCategories(ctl))
	g.PUT("/category", handleSelectCategory(ctl))
	g.POST("/refresh", handleRefresh(ctl))
	g.PUT("/presence", handlePresence(ctl))
}

// SelectCategoryRequest switches the feed
type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// PresenceRequest updates connectivity and visibility; omitted fields are unchanged
type PresenceRequest struct {
	Online  *bool `json:"online"`
	Visible *bool `json:"visible"`
}

func handleListCategories(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"categories": types.Categories(),
			"selected":   ctl.Store().State().SelectedCategory,
		})
	}
}

func handleSelectCategory(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := types.ParseCategory(req.Category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		respondAfterLoad(c, ctl, ctl.SelectCategory(c.Request.Context(), req.Category))
	}
}

// handleRefresh reloads the selected category and answers once the load settles
func handleRefresh(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondAfterLoad(c, ctl, ctl.Refresh(c.Request.Context()))
	}
}

func respondAfterLoad(c *gin.Context, ctl *reader.Controller, err error) {
	switch {
	case errors.Is(err, reader.ErrSuperseded):
		c.JSON(http.StatusAccepted, gin.H{"status": "superseded by a newer load"})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "loaded", "state": ctl.Store().State()})
	}
}

func handlePresence(ctl *reader.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PresenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Online != nil {
			ctl.SetOnline(*req.Online)
		}
		if req.Visible != nil {
			ctl.SetVisible(*req.Visible)
		}

		online, visible := ctl.Presence()
		c.JSON(http.StatusOK, gin.H{"online": online, "visible": visible})
	}
}
