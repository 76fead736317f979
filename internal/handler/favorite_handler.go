package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /favoritesのHTTP
type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

// DI
func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

type ToggleFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// /favorites配下を登録
func (h *FavoriteHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/favorites")
	g.Use(middleware.SessionIdentity(cfg))

	g.GET("", h.list)
	g.POST("/items", h.add)
	g.DELETE("/items/:productID", h.remove)
	g.POST("/toggle", h.toggle)
	g.DELETE("", h.clear)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	sessionID, _, ok := identityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *FavoriteHandler) add(c echo.Context) error {
	sessionID, _, ok := identityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Add(c.Request().Context(), sessionID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	sessionID, _, ok := identityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Remove(c.Request().Context(), sessionID, c.Param("productID"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// ハートボタン。登録済みなら解除、未登録なら登録。
func (h *FavoriteHandler) toggle(c echo.Context) error {
	sessionID, _, ok := identityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ToggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Toggle(c.Request().Context(), sessionID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *FavoriteHandler) clear(c echo.Context) error {
	sessionID, _, ok := identityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Clear(c.Request().Context(), sessionID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
