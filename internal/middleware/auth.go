package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// OperatorClaims identify the POS operator and the school the terminal
// serves. The school id scopes catalog visibility.
type OperatorClaims struct {
	OperatorID string `json:"operator_id"`
	SchoolID   string `json:"school_id"`
	jwt.RegisteredClaims
}

// OperatorAuth validates an HS256 bearer token and stashes the operator
// and school ids on the request context.
func OperatorAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &OperatorClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("operator_id", claims.OperatorID)
			c.Set("school_id", claims.SchoolID)
			return next(c)
		}
	}
}
