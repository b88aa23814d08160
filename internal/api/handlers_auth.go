package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/models"
	"github.com/terraincognita07/splitday/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(input.Name, input.Email, input.Password)
	if err != nil {
		return registerAPIError(c, err)
	}
	return handler.respondWithSession(c, fiber.StatusCreated, &user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	client := loginClientKey(c)
	now := handler.now()
	if wait := handler.loginThrottle.retryAfter(client, now); wait > 0 {
		handler.metrics.LoginThrottled()
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds(wait))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := loginInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginThrottle.recordFailure(client, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		logrus.WithError(err).Error("authenticate")
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	handler.loginThrottle.forget(client)
	return handler.respondWithSession(c, fiber.StatusOK, &user)
}

// Refresh exchanges the refresh cookie for a new access token and rotates
// the cookie.
func (handler *Handler) Refresh(c *fiber.Ctx) error {
	userID, err := handler.parseToken(c.Cookies(refreshCookieName), tokenKindRefresh)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}

	user, err := handler.authService.FindByID(userID)
	if err != nil {
		if isUserNotFound(err) {
			handler.clearRefreshCookie(c)
			return apiError(c, fiber.StatusUnauthorized, "invalid refresh token")
		}
		logrus.WithError(err).WithField("user_id", userID).Error("refresh session")
		return apiError(c, fiber.StatusInternalServerError, "failed to refresh session")
	}
	return handler.respondWithSession(c, fiber.StatusOK, &user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return passwordChangeAPIError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := deleteAccountInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.DeleteAccount(user.ID, input.Password); err != nil {
		return deleteAccountAPIError(c, err)
	}

	handler.clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) respondWithSession(c *fiber.Ctx, status int, user *models.User) error {
	accessToken, err := handler.issueSession(c, user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("issue session tokens")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(status).JSON(authResponse{User: *user, AccessToken: accessToken})
}
