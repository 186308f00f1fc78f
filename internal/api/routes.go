package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	tracker := api.Group("/tracker", handler.OptionalAuth)
	tracker.Get("", handler.GetTracker)
	tracker.Post("/start", handler.StartActivity)
	tracker.Post("/stop", handler.StopActivity)

	api.Get("/activities", handler.OptionalAuth, handler.GetActivities)

	circles := api.Group("/circles", handler.AuthRequired)
	circles.Post("", handler.CreateCircle)
	circles.Get("", handler.ListCircles)
	circles.Post("/join", handler.JoinCircle)
	circles.Get("/:id/view", handler.GetCircleView)
}
