package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PromptHandler handles the caller's saved search prompts
type PromptHandler struct {
	promptService *services.PromptService
}

func NewPromptHandler(promptService *services.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

// RegisterPromptRoutes registers prompt routes
func (h *PromptHandler) RegisterPromptRoutes(g *echo.Group) {
	g.GET("/me/prompts", h.ListPrompts)
	g.POST("/me/prompts", h.CreatePrompt)
	g.PUT("/me/prompts/:id", h.UpdatePrompt)
	g.DELETE("/me/prompts/:id", h.DeletePrompt)
	g.PATCH("/me/prompts/:id/use", h.UsePrompt)
}

func promptID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid prompt ID")
	}
	return uint(id), nil
}

// ListPrompts returns prompts, most recently used first
func (h *PromptHandler) ListPrompts(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	prompts, err := h.promptService.List(c.Request().Context(), principal.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, prompts)
}

func (h *PromptHandler) CreatePrompt(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req models.CreatePromptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	prompt, err := h.promptService.Create(c.Request().Context(), principal.UserID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, prompt)
}

func (h *PromptHandler) UpdatePrompt(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := promptID(c)
	if err != nil {
		return err
	}
	var req models.UpdatePromptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	prompt, err := h.promptService.Update(c.Request().Context(), principal.UserID, id, req)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, prompt)
}

// UsePrompt marks the prompt as just used
func (h *PromptHandler) UsePrompt(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := promptID(c)
	if err != nil {
		return err
	}
	prompt, err := h.promptService.Use(c.Request().Context(), principal.UserID, id)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, prompt)
}

func (h *PromptHandler) DeletePrompt(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := promptID(c)
	if err != nil {
		return err
	}
	if err := h.promptService.Delete(c.Request().Context(), principal.UserID, id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
