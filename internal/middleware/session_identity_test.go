package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func testConfig() config.Config {
	return config.Config{JWTSecret: testSecret}
}

func signToken(t *testing.T, sub string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func invoke(t *testing.T, req *http.Request) (sessionID, userID string, rec *httptest.ResponseRecorder, err error) {
	t.Helper()
	e := echo.New()
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.SessionIdentity(testConfig())(func(c echo.Context) error {
		sessionID, _ = c.Get(middleware.CtxSessionIDKey).(string)
		userID, _ = c.Get(middleware.CtxUserIDKey).(string)
		return c.NoContent(http.StatusOK)
	})
	err = h(c)
	return sessionID, userID, rec, err
}

// Test: 正しいBearerトークンでユーザーIDが載る
func TestSessionIdentity_ValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1"))

	sessionID, userID, _, err := invoke(t, req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "user-1", sessionID)
}

// Test: 壊れたトークンは401
func TestSessionIdentity_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer tampered.jwt.token")

	_, _, rec, err := invoke(t, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: トークン無しはゲスト扱いでクッキーが発行される
func TestSessionIdentity_GuestGetsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)

	sessionID, userID, rec, err := invoke(t, req)
	require.NoError(t, err)
	assert.Empty(t, userID)
	assert.Contains(t, sessionID, "guest:")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "guest_id", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

// Test: 既存のguest_idクッキーは使い回す
func TestSessionIdentity_ExistingGuestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "guest_id", Value: "abc-123"})

	sessionID, _, rec, err := invoke(t, req)
	require.NoError(t, err)
	assert.Equal(t, "guest:abc-123", sessionID)
	assert.Empty(t, rec.Result().Cookies())
}
