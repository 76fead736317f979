package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, cartH *handler.CartHandler, favH *handler.FavoriteHandler) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	cartH.RegisterRoutes(e, cfg)
	favH.RegisterRoutes(e, cfg)
}
