package authRoutes

import (
	authController "coursehub/controllers/auth"
	authValidator "coursehub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration and login routes
func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", authValidator.Register(), authController.Register)
	app.Post("/login", authValidator.Login(), authController.Login)
}
