package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userId"

// JWTAuth authenticates requests with an HMAC-signed bearer token whose "sub"
// claim is the user id. With an empty secret every request passes
// unauthenticated.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}

		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			userID, err := parseSubject(raw, []byte(secret))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token",
				})
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// AuthenticatedUser returns the user id put on the context by JWTAuth.
func AuthenticatedUser(c echo.Context) (kernel.UUID, bool) {
	id, ok := c.Get(userIDKey).(kernel.UUID)
	return id, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func parseSubject(raw string, secret []byte) (kernel.UUID, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return kernel.UUID{}, errors.New("token has no subject")
	}
	return kernel.UUIDFromString(sub)
}
