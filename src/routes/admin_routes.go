package routes

import (
	"Backend-TanyaPintar/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// adminRoutes เส้นทาง dashboard ทั้งหมด ต้องเป็น Admin
func adminRoutes(api fiber.Router, ctl Controllers) {
	admin := api.Group("/admin", middleware.AuthJWT, middleware.RequireAdmin)

	classes := admin.Group("/classes")
	classes.Get("/", ctl.Class.ListClasses)
	classes.Post("/", ctl.Class.CreateClass)
	classes.Delete("/:id", ctl.Class.DeleteClass)
	classes.Get("/:id/qrcode", ctl.Class.ClassQRCode)

	// preview และ suggest ต้องมาก่อน /:id
	questions := admin.Group("/questions")
	questions.Get("/", ctl.Question.ListQuestions)
	questions.Post("/", ctl.Question.CreateQuestion)
	questions.Get("/preview", ctl.Question.PreviewQuestions)
	questions.Post("/suggest", ctl.Question.SuggestQuestions)
	questions.Get("/:id", ctl.Question.GetQuestion)
	questions.Put("/:id", ctl.Question.UpdateQuestion)
	questions.Patch("/:id/toggle", ctl.Question.ToggleQuestion)
	questions.Delete("/:id", ctl.Question.DeleteQuestion)

	submissions := admin.Group("/submissions")
	submissions.Get("/", ctl.Submission.ListSubmissions)
	submissions.Get("/export", ctl.Submission.ExportSubmissions)
	submissions.Post("/reset-code", ctl.Submission.IssueResetCode)
	submissions.Delete("/", ctl.Submission.ClearSubmissions)
	submissions.Get("/:id", ctl.Submission.GetSubmission)
	submissions.Delete("/:id", ctl.Submission.DeleteSubmission)

	admin.Get("/reports", ctl.Report.GetReport)
	admin.Get("/live", ctl.Report.Live)

	admin.Get("/config", ctl.Config.GetConfig)
	admin.Put("/config", ctl.Config.UpdateConfig)
	admin.Patch("/config/open", ctl.Config.SetOpen)

	insights := admin.Group("/insights")
	insights.Post("/", ctl.Insight.StartInsight)
	insights.Get("/", ctl.Insight.ListInsights)
	insights.Get("/:id", ctl.Insight.GetInsight)
}
