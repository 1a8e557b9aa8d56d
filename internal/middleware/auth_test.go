package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims *OperatorClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := OperatorAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestOperatorAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, &OperatorClaims{
		OperatorID: "op-7",
		SchoolID:   "school-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, c, err := invoke(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "op-7", c.Get("operator_id"))
	assert.Equal(t, "school-1", c.Get("school_id"))
}

func TestOperatorAuthMissingHeader(t *testing.T) {
	_, _, err := invoke(t, "")

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestOperatorAuthWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", &OperatorClaims{OperatorID: "op-7", SchoolID: "school-1"})

	_, _, err := invoke(t, "Bearer "+token)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestOperatorAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, &OperatorClaims{
		OperatorID: "op-7",
		SchoolID:   "school-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, _, err := invoke(t, "Bearer "+token)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
