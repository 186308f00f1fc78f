package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/satriadp/eightify/internal/services"
)

const (
	joinAttemptLimit   = 10
	joinAttemptIPLimit = 30
	joinAttemptWindow  = 15 * time.Minute
)

func (handler *Handler) CreateCircle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := createCircleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	circle, err := handler.circleService.CreateCircle(input.Name, strings.TrimSpace(input.Description), user.ID)
	if errors.Is(err, services.ErrEmptyCircleName) {
		return apiError(c, fiber.StatusBadRequest, "circle name required")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create circle")
	}

	return c.Status(fiber.StatusCreated).JSON(circle)
}

func (handler *Handler) ListCircles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	memberships, err := handler.circleService.ListMemberships(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to list circles")
	}

	return c.JSON(fiber.Map{"circles": memberships})
}

// JoinCircle is rate-limited: invite codes are short, so failed lookups
// count against sliding windows per user and per source address. The second
// window keeps a guesser from widening the budget by rotating accounts.
func (handler *Handler) JoinCircle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := joinCircleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	userKey := fmt.Sprintf("join:user:%d", user.ID)
	ipKey := "join:ip:" + c.IP()
	now := time.Now()
	if handler.joinLimiter.tooManyRecent(userKey, now, joinAttemptLimit, joinAttemptWindow) ||
		handler.joinLimiter.tooManyRecent(ipKey, now, joinAttemptIPLimit, joinAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many join attempts")
	}

	circle, err := handler.circleService.JoinCircle(input.Code, user.ID)
	switch {
	case errors.Is(err, services.ErrCircleNotFound):
		handler.joinLimiter.addFailure(userKey, now, joinAttemptWindow)
		handler.joinLimiter.addFailure(ipKey, now, joinAttemptWindow)
		return apiError(c, fiber.StatusNotFound, "invalid invite code")
	case errors.Is(err, services.ErrAlreadyMember):
		return apiError(c, fiber.StatusConflict, "already a member of this circle")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to join circle")
	}

	handler.joinLimiter.reset(userKey)
	handler.joinLimiter.reset(ipKey)
	return c.JSON(circle)
}

func (handler *Handler) GetCircleView(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	circleID := strings.TrimSpace(c.Params("id"))
	if circleID == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid circle id")
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = handler.trackerService.Today()
	}

	view, err := handler.circleService.LoadCircleView(circleID, date)
	if errors.Is(err, services.ErrCircleNotFound) {
		return apiError(c, fiber.StatusNotFound, "circle not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load circle")
	}

	// Circle contents are visible to members only.
	if !view.Circle.HasMember(user.ID) {
		return apiError(c, fiber.StatusForbidden, "not a member of this circle")
	}

	return c.JSON(view)
}
