package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey    = "user_id"    // string（ゲストは空）
	CtxSessionIDKey = "session_id" // string

	guestCookieName = "guest_id"
	guestCookieTTL  = 30 * 24 * time.Hour
)

// セッション識別ミドルウェア。Bearerトークンがあれば検証してユーザーIDを、
// 無ければguest_idクッキー（無ければ発行）をセッションIDとして載せる。
// カート操作はゲストでも通すので、トークン必須にはしない。
// ただし壊れたトークンは黙ってゲスト扱いにせず401で弾く。
func SessionIdentity(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if authz != "" {
				userID, err := verifyBearer(authz, cfg.JWTSecret)
				if err != nil {
					return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
				}
				c.Set(CtxUserIDKey, userID)
				c.Set(CtxSessionIDKey, userID)
				return next(c)
			}

			//ゲスト：クッキーを読み、無ければ発行する
			sid := ""
			if ck, err := c.Cookie(guestCookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     guestCookieName,
					Value:    sid,
					Path:     "/",
					Expires:  time.Now().Add(guestCookieTTL),
					HttpOnly: true,
				})
			}

			c.Set(CtxUserIDKey, "")
			c.Set(CtxSessionIDKey, "guest:"+sid)
			return next(c)
		}
	}
}

// Bearerトークンを検証してsub（ユーザーID）を返す。
func verifyBearer(authz string, secret string) (string, error) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("not a bearer token")
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return "", errors.New("empty token")
	}

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid sub")
	}

	return sub, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
