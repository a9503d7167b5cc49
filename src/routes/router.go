package routes

import (
	"Backend-TanyaPintar/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// Controllers ทุก controller ที่ route ต้องใช้ (สร้างใน main)
type Controllers struct {
	Portal     *controllers.PortalController
	Auth       *controllers.AuthController
	Class      *controllers.ClassController
	Question   *controllers.QuestionController
	Submission *controllers.SubmissionController
	Report     *controllers.ReportController
	Config     *controllers.ConfigController
	Insight    *controllers.InsightController

	// SubmitRateLimit จำนวน submit ต่อนาทีต่อ IP (0 = ไม่จำกัด)
	SubmitRateLimit int
}

func InitRoutes(app *fiber.App, ctl Controllers) {
	api := app.Group("/api")

	portalRoutes(api, ctl)
	authRoutes(api, ctl.Auth)
	adminRoutes(api, ctl)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
