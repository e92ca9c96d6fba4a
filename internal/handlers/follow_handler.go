package handlers

import (
	"net/http"

	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/me/following", h.ListFollowing)
}

// FollowUser follows a user. Following someone twice is not an error.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	res, err := h.followService.Follow(c.Request().Context(), principal.UserID, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, res)
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	res, err := h.followService.Unfollow(c.Request().Context(), principal.UserID, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, res)
}

func (h *FollowHandler) ListFollowing(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	users, err := h.followService.ListFollowing(c.Request().Context(), principal.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}
