package routes

import (
	"Backend-TanyaPintar/src/controllers"
	"Backend-TanyaPintar/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนด route สำหรับ auth (login/logout)
func authRoutes(api fiber.Router, ctl *controllers.AuthController) {
	auth := api.Group("/auth")

	auth.Post("/login", ctl.Login)                       // 🔐 login
	auth.Post("/logout", middleware.AuthJWT, ctl.Logout) // 🚪 logout
}
