package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Start はechoサーバーを立ち上げる。
func Start(cfg config.Config, cartH *handler.CartHandler, favH *handler.FavoriteHandler) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, cartH, favH)

	return e.Start(":" + cfg.Port)
}
