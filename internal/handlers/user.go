package handlers

import (
	"net/http"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile registration and lookup
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.Register)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/me", h.GetProfile)
}

// Register creates or refreshes the caller's profile from the verified identity.
func (h *UserHandler) Register(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	name := req.Name
	if name == "" {
		name = principal.Name
	}

	user, err := h.userService.Register(c.Request().Context(), principal.UserID, principal.Email, name)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, user)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), principal.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, user)
}

// GetUser returns another user's public profile and whether the caller follows them.
func (h *UserHandler) GetUser(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.userService.Get(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	isFollowing := false
	if me, err := h.userService.Get(ctx, principal.UserID); err == nil {
		isFollowing = me.IsFollowing(user.ID)
	}

	return respond(c, http.StatusOK, echo.Map{
		"id":          user.ID,
		"name":        user.Name,
		"gifCount":    len(user.Gifs),
		"isFollowing": isFollowing,
	})
}

// SearchUsers searches for users by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userService.Search(c.Request().Context(), query)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}
