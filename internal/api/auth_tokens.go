package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/splitday/internal/models"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

var errInvalidToken = errors.New("invalid token")

type authClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(user *models.User, kind string, ttl time.Duration) (string, error) {
	now := handler.now()
	claims := authClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

// parseToken returns the user ID of a valid, unexpired HS256 token of the
// given kind.
func (handler *Handler) parseToken(raw string, kind string) (string, error) {
	if raw == "" {
		return "", errInvalidToken
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	if claims.Kind != kind || claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}

func (handler *Handler) issueSession(c *fiber.Ctx, user *models.User) (string, error) {
	accessToken, err := handler.buildToken(user, tokenKindAccess, handler.accessTTL)
	if err != nil {
		return "", err
	}
	refreshToken, err := handler.buildToken(user, tokenKindRefresh, handler.refreshTTL)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/api/v1/auth",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  handler.now().Add(handler.refreshTTL),
	})
	return accessToken, nil
}

func (handler *Handler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  handler.now().Add(-1 * time.Hour),
	})
}
