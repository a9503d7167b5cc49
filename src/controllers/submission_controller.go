package controllers

import (
	"time"

	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/export"
	"Backend-TanyaPintar/src/services/questions"
	"Backend-TanyaPintar/src/services/reports"
	"Backend-TanyaPintar/src/services/submissions"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
)

type SubmissionController struct {
	svc       *submissions.Service
	questions *questions.Service
	loc       *time.Location
}

func NewSubmissionController(svc *submissions.Service, qs *questions.Service, loc *time.Location) *SubmissionController {
	return &SubmissionController{svc: svc, questions: qs, loc: loc}
}

func parseFilter(c *fiber.Ctx) models.SubmissionFilter {
	return models.SubmissionFilter{
		ClassName: c.Query("className"),
		Search:    c.Query("search"),
	}
}

// ListSubmissions godoc
// @Summary      List submissions
// @Description  Filter by class ("all" for every class) and case-insensitive name search
// @Tags         submissions
// @Security     BearerAuth
// @Produce      json
// @Param        className  query  string  false  "Class name or all"
// @Param        search     query  string  false  "Name contains"
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/submissions [get]
func (sc *SubmissionController) ListSubmissions(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid pagination parameters")
	}
	params.Normalize()

	subs, total, err := sc.svc.Page(c.UserContext(), parseFilter(c), params)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	catalog, err := sc.questions.List(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(reports.Describe(subs, catalog), total, params))
}

// GetSubmission godoc
// @Summary      Get one submission with readable answers
// @Tags         submissions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Submission ID"
// @Success      200  {object}  models.SubmissionView
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/submissions/{id} [get]
func (sc *SubmissionController) GetSubmission(c *fiber.Ctx) error {
	sub, err := sc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	catalog, err := sc.questions.List(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.SubmissionView{Submission: *sub, AnswerViews: reports.DescribeAnswers(*sub, catalog)})
}

// DeleteSubmission godoc
// @Summary      Delete one submission
// @Tags         submissions
// @Security     BearerAuth
// @Param        id  path  string  true  "Submission ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/submissions/{id} [delete]
func (sc *SubmissionController) DeleteSubmission(c *fiber.Ctx) error {
	if err := sc.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Submission deleted successfully"})
}

// IssueResetCode godoc
// @Summary      Get a confirmation code for clearing all submissions
// @Tags         submissions
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  models.ResetCodeResponse
// @Router       /admin/submissions/reset-code [post]
func (sc *SubmissionController) IssueResetCode(c *fiber.Ctx) error {
	code, expires, err := sc.svc.IssueResetCode()
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.ResetCodeResponse{Code: code, ExpiresAt: expires})
}

// ClearSubmissions godoc
// @Summary      Delete every submission
// @Tags         submissions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  models.ClearSubmissionsRequest  true  "Confirmation code"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/submissions [delete]
func (sc *SubmissionController) ClearSubmissions(c *fiber.Ctx) error {
	var req models.ClearSubmissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	deleted, err := sc.svc.ClearAll(c.UserContext(), req.Code)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Semua jawaban berhasil dihapus.", "deleted": deleted})
}

// ExportSubmissions godoc
// @Summary      Export submissions as CSV
// @Tags         submissions
// @Security     BearerAuth
// @Produce      text/csv
// @Param        className  query  string  false  "Class name or all"
// @Param        search     query  string  false  "Name contains"
// @Success      200  {file}  file
// @Router       /admin/submissions/export [get]
func (sc *SubmissionController) ExportSubmissions(c *fiber.Ctx) error {
	subs, err := sc.svc.List(c.UserContext(), parseFilter(c))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	catalog, err := sc.questions.List(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	body, err := export.CSV(subs, catalog, sc.loc)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to build CSV")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(export.FileName(time.Now()))
	return c.Send(body)
}
