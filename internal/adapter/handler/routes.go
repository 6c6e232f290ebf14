package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ShamarKellman/power-tranz/internal/adapter/middleware"
)

// SetupRoutes mounts the /v1 API. Routes that expose card data sit
// behind the API key.
func SetupRoutes(app *fiber.App, cards *CardHandler, auth *AuthorizationHandler, keyHash string) {
	api := app.Group("/v1")

	// Public
	api.Post("/cards/validate", cards.ValidateCard)
	api.Get("/networks", cards.ListNetworks)

	// Protected
	protected := middleware.Protected(keyHash)
	api.Post("/authorizations", protected, auth.Authorize)
	api.Get("/cards/checks", protected, cards.GetHistory)
}

// ErrorHandler answers unhandled errors in the same {"error": ...}
// shape the handlers use.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
