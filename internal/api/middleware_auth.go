package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/satriadp/eightify/internal/models"
	"github.com/satriadp/eightify/internal/security"
	"github.com/satriadp/eightify/internal/services"
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// AuthRequired guards account-only routes (circles).
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	c.Locals(contextStoreKey, services.AccountKey(user.ID))
	return c.Next()
}

// OptionalAuth resolves the tracking principal: the signed-in account when
// the auth cookie validates, otherwise a guest session. Guests also carry
// the device-scoped last-reset marker; a stale marker discards the stored
// session ledger before the request is served.
func (handler *Handler) OptionalAuth(c *fiber.Ctx) error {
	if user, err := handler.authenticateRequest(c); err == nil {
		c.Locals(contextUserKey, user)
		c.Locals(contextStoreKey, services.AccountKey(user.ID))
		return c.Next()
	}

	sessionID, err := handler.ensureGuestSession(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create guest session")
	}
	key := services.GuestKey(sessionID)

	today := handler.trackerService.Today()
	marker := strings.TrimSpace(c.Cookies(lastResetCookieName))
	if marker != "" && marker != today {
		handler.trackerService.DropSession(key)
	}
	handler.setLastResetCookie(c, today)

	c.Locals(contextStoreKey, key)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errors.New("missing auth cookie")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (handler *Handler) buildToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User, rememberMe bool) error {
	tokenTTL := defaultAuthTokenTTL
	if rememberMe {
		tokenTTL = rememberAuthTokenTTL
	}

	token, err := handler.buildToken(user, tokenTTL)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	}
	if rememberMe {
		cookie.Expires = time.Now().Add(tokenTTL)
	}
	c.Cookie(cookie)
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// ensureGuestSession returns the request's guest session id, minting one the
// first time. The cookie has no expiry on purpose: it dies with the browser
// session, taking the guest ledger with it.
func (handler *Handler) ensureGuestSession(c *fiber.Ctx) (string, error) {
	sessionID := strings.TrimSpace(c.Cookies(guestCookieName))
	if sessionID != "" {
		return sessionID, nil
	}

	sessionID, err := security.RandomString(guestSessionIDLength, security.AlphabetSessionID)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     guestCookieName,
		Value:    sessionID,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	})
	return sessionID, nil
}

func (handler *Handler) clearGuestSession(c *fiber.Ctx) {
	sessionID := strings.TrimSpace(c.Cookies(guestCookieName))
	if sessionID != "" {
		handler.trackerService.DropSession(services.GuestKey(sessionID))
	}
	c.Cookie(&fiber.Cookie{
		Name:     guestCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) setLastResetCookie(c *fiber.Ctx, date string) {
	c.Cookie(&fiber.Cookie{
		Name:     lastResetCookieName,
		Value:    date,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(lastResetCookieTTL),
	})
}
