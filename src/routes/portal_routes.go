package routes

import (
	"time"

	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// portalRoutes เส้นทางสาธารณะสำหรับผู้ตอบแบบสอบถาม (ไม่ต้อง login)
func portalRoutes(api fiber.Router, ctl Controllers) {
	portal := api.Group("/portal")

	portal.Get("/config", ctl.Portal.GetConfig)
	portal.Get("/classes", ctl.Portal.GetClasses)
	portal.Get("/form", ctl.Portal.GetForm)
	portal.Get("/live", ctl.Portal.Live)

	if ctl.SubmitRateLimit > 0 {
		portal.Post("/submissions", limiter.New(limiter.Config{
			Max:        ctl.SubmitRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.HandleError(c, fiber.StatusTooManyRequests, "Too many submissions, try again later")
			},
		}), ctl.Portal.Submit)
		return
	}
	portal.Post("/submissions", ctl.Portal.Submit)
}
