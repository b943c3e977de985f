package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/careerguide/portal/internal/core/service"
)

// Context keys set by the middleware in this package.
const (
	CtxDeviceID = "device_id"
	CtxSessions = "sessions"
	CtxFeedback = "feedback"
)

// Device validates the device token and injects the device id into context.
func Device(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing device token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid device token")
			}

			deviceID, _ := claims[service.ClaimDeviceID].(string)
			if deviceID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing device identity")
			}
			c.Set(CtxDeviceID, deviceID)

			return next(c)
		}
	}
}
