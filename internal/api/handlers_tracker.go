package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/satriadp/eightify/internal/models"
	"github.com/satriadp/eightify/internal/services"
)

func (handler *Handler) GetTracker(c *fiber.Ctx) error {
	key, ok := currentStoreKey(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "missing session")
	}

	snapshot := handler.trackerService.Snapshot(key)
	return c.JSON(trackerResponse(snapshot))
}

func (handler *Handler) StartActivity(c *fiber.Ctx) error {
	key, ok := currentStoreKey(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "missing session")
	}

	input := startActivityInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	started, err := handler.trackerService.StartActivity(key, input.Category, input.Name)
	switch {
	case errors.Is(err, services.ErrEmptyActivityName):
		return apiError(c, fiber.StatusBadRequest, "activity name required")
	case errors.Is(err, services.ErrInvalidCategory):
		return apiError(c, fiber.StatusBadRequest, "invalid category")
	case errors.Is(err, services.ErrActivityInProgress):
		return apiError(c, fiber.StatusConflict, "an activity is already in progress")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to start activity")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"name":       started.Name,
		"category":   started.Category,
		"started_at": started.StartedAt.UnixMilli(),
	})
}

func (handler *Handler) StopActivity(c *fiber.Ctx) error {
	key, ok := currentStoreKey(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "missing session")
	}

	activity, err := handler.trackerService.StopActivity(key)
	if errors.Is(err, services.ErrNoActivityInProgress) {
		return apiError(c, fiber.StatusConflict, "no activity in progress")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to stop activity")
	}

	return c.JSON(activity)
}

func (handler *Handler) GetActivities(c *fiber.Ctx) error {
	key, ok := currentStoreKey(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "missing session")
	}

	snapshot := handler.trackerService.Snapshot(key)
	return c.JSON(fiber.Map{
		"date":       snapshot.Ledger.Date,
		"activities": snapshot.Ledger.Activities,
	})
}

func trackerResponse(snapshot services.TrackerSnapshot) fiber.Map {
	ledger := snapshot.Ledger

	response := fiber.Map{
		"date": ledger.Date,
		"totals": fiber.Map{
			models.CategoryProductive: ledger.Productive,
			models.CategoryPersonal:   ledger.Personal,
			models.CategorySleep:      ledger.Sleep,
		},
		"progress": fiber.Map{
			models.CategoryProductive: ledger.GoalProgress(models.CategoryProductive),
			models.CategoryPersonal:   ledger.GoalProgress(models.CategoryPersonal),
			models.CategorySleep:      ledger.GoalProgress(models.CategorySleep),
		},
		"activities": ledger.Activities,
		"current":    nil,
	}

	if snapshot.Current != nil {
		response["current"] = fiber.Map{
			"name":            snapshot.Current.Name,
			"category":        snapshot.Current.Category,
			"started_at":      snapshot.Current.StartedAt,
			"elapsed_seconds": snapshot.Current.ElapsedSeconds,
		}
	}

	return response
}
