package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ミドルウェアが載せたセッションIDとユーザーIDを取り出す。
func identityFromContext(c echo.Context) (sessionID string, userID string, ok bool) {
	sid, _ := c.Get(middleware.CtxSessionIDKey).(string)
	uid, _ := c.Get(middleware.CtxUserIDKey).(string)
	if sid == "" {
		return "", "", false
	}
	return sid, uid, true
}
