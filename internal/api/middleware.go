package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/models"
)

const (
	refreshCookieName = "splitday_refresh"
	contextUserKey    = "current_user"
	bearerPrefix      = "Bearer "
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// AuthRequired resolves the Bearer access token to a user and stores it in
// the request locals. Accounts holding a temporary password are refused until
// they change it.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	return handler.authenticate(c, false)
}

// AuthAllowingPasswordChange is AuthRequired for the routes a user with a
// temporary password still needs: reading the profile and changing the password.
func (handler *Handler) AuthAllowingPasswordChange(c *fiber.Ctx) error {
	return handler.authenticate(c, true)
}

func (handler *Handler) authenticate(c *fiber.Ctx, allowPendingPasswordChange bool) error {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if !strings.HasPrefix(header, bearerPrefix) {
		return apiError(c, fiber.StatusUnauthorized, "access token required")
	}

	userID, err := handler.parseToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)), tokenKindAccess)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid or expired token")
	}

	user, err := handler.authService.FindByID(userID)
	if err != nil {
		if !isUserNotFound(err) {
			logrus.WithError(err).WithField("user_id", userID).Error("load authenticated user")
			return apiError(c, fiber.StatusInternalServerError, "failed to load account")
		}
		return apiError(c, fiber.StatusUnauthorized, "invalid or expired token")
	}
	if user.MustChangePassword && !allowPendingPasswordChange {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}
