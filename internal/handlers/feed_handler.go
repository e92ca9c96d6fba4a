package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const defaultFeedLimit = 10

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// feedPagination reads page and limit from the query string. Missing or
// malformed values fall back to defaults; out of range values are clamped.
func feedPagination(c echo.Context) (page, limit int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		limit = defaultFeedLimit
	}
	limit = max(1, min(limit, services.MaxPageSize))
	return page, limit
}

// GetFeed returns the GIFs of followed users, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	page, limit := feedPagination(c)

	feed, err := h.feedService.GetFeed(c.Request().Context(), principal.UserID, page, limit)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"items": feed.Items,
		},
		"meta": echo.Map{
			"currentPage":     feed.Page,
			"itemsPerPage":    feed.PageSize,
			"totalItems":      feed.Total,
			"hasNextPage":     feed.HasMore,
			"hasPreviousPage": feed.Page > 1,
		},
	})
}
