package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/gif-feed/backend/internal/middleware"
	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// GifHandler serves GIF search, acquisition and the per-user collections.
type GifHandler struct {
	gifService *services.GifService
	logger     *logrus.Logger
}

func NewGifHandler(gifService *services.GifService, logger *logrus.Logger) *GifHandler {
	return &GifHandler{gifService: gifService, logger: logger}
}

// RegisterGifRoutes registers search, acquisition and collection routes
func (h *GifHandler) RegisterGifRoutes(g *echo.Group) {
	g.GET("/gifs/search", h.Search)

	g.POST("/me/gifs/acquire", h.Acquire)
	g.POST("/me/gifs", h.SaveGif)
	g.GET("/me/gifs", h.ListGifs)
	g.DELETE("/me/gifs/:id", h.DeleteGif)

	owner := middleware.EnsureSelfParam("uid")
	g.GET("/users/:uid/gifs", h.ListUserGifs, owner)
	g.POST("/users/:uid/gifs", h.SaveUserGif, owner)
}

func (h *GifHandler) Search(c echo.Context) error {
	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxSearchLimit)
	}

	results, err := h.gifService.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, results)
}

// Acquire surfaces a GIF the caller has neither saved nor seen in this session.
// Running out of attempts is a normal outcome reported as found=false.
func (h *GifHandler) Acquire(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req models.AcquireGifRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.gifService.Acquire(c.Request().Context(), principal.UserID, req)
	if errors.Is(err, services.ErrNotFoundAfterRetries) {
		h.logger.WithFields(logrus.Fields{
			"user_id": principal.UserID,
			"query":   req.Query,
		}).Info("no unseen gif after retries")
		return respond(c, http.StatusOK, echo.Map{"found": false})
	}
	if err != nil {
		return toHTTPError(err)
	}

	data := echo.Map{"found": true, "gif": res.Gif}
	if res.Saved != nil {
		data["saved"] = res.Saved
	}
	return respond(c, http.StatusOK, data)
}

func (h *GifHandler) SaveGif(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return h.save(c, principal.UserID)
}

func (h *GifHandler) SaveUserGif(c echo.Context) error {
	return h.save(c, c.Param("uid"))
}

func (h *GifHandler) save(c echo.Context, userID string) error {
	var req models.SaveGifRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	gif, err := h.gifService.Save(c.Request().Context(), userID, req.URL, req.Title)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, gif)
}

func (h *GifHandler) ListGifs(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	return h.list(c, principal.UserID)
}

func (h *GifHandler) ListUserGifs(c echo.Context) error {
	return h.list(c, c.Param("uid"))
}

func (h *GifHandler) list(c echo.Context, userID string) error {
	gifs, err := h.gifService.List(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, gifs)
}

func (h *GifHandler) DeleteGif(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.gifService.Delete(c.Request().Context(), principal.UserID, c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
