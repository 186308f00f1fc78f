package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satriadp/eightify/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validateRegistrationCredentials(credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	exists, err := handler.authService.RegistrationEmailExists(credentials.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	user := models.User{
		Email:        credentials.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().In(handler.location),
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	if err := handler.authService.UpsertProfile(&user, credentials.DisplayName, credentials.PhotoURL); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	// Guest data is not migrated into the new account.
	handler.clearGuestSession(c)

	return c.Status(fiber.StatusCreated).JSON(userResponse(&user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.FindByNormalizedEmail(credentials.Email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	// Mirror the identity into the profile document on every sign-in.
	if err := handler.authService.UpsertProfile(&user, credentials.DisplayName, credentials.PhotoURL); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	// Signing in switches to the durable ledger; in-memory guest totals are
	// discarded, not merged.
	handler.clearGuestSession(c)

	return c.JSON(userResponse(&user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	// A fresh, empty guest session begins after sign-out.
	handler.clearGuestSession(c)
	return c.JSON(fiber.Map{"ok": true})
}

func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"photo_url":    user.PhotoURL,
	}
}
