package controllers

import (
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/ai"
	"Backend-TanyaPintar/src/services/questions"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
)

type QuestionController struct {
	svc *questions.Service
	ai  *ai.Service
}

func NewQuestionController(svc *questions.Service, aiSvc *ai.Service) *QuestionController {
	return &QuestionController{svc: svc, ai: aiSvc}
}

// ListQuestions godoc
// @Summary      List the whole catalog, newest first
// @Tags         questions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Question
// @Router       /admin/questions [get]
func (qc *QuestionController) ListQuestions(c *fiber.Ctx) error {
	list, err := qc.svc.List(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetQuestion godoc
// @Summary      Get a question
// @Tags         questions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Question ID"
// @Success      200  {object}  models.Question
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/questions/{id} [get]
func (qc *QuestionController) GetQuestion(c *fiber.Ctx) error {
	q, err := qc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(q)
}

// CreateQuestion godoc
// @Summary      Create a question
// @Tags         questions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  models.QuestionRequest  true  "Question"
// @Success      201  {object}  models.Question
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/questions [post]
func (qc *QuestionController) CreateQuestion(c *fiber.Ctx) error {
	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	q, err := qc.svc.Create(c.UserContext(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// UpdateQuestion godoc
// @Summary      Update text, type, active flag or targeting
// @Tags         questions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Question ID"
// @Param        body  body  models.QuestionPatch  true  "Fields to change"
// @Success      200  {object}  models.Question
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/questions/{id} [put]
func (qc *QuestionController) UpdateQuestion(c *fiber.Ctx) error {
	var patch models.QuestionPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(patch); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	q, err := qc.svc.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(q)
}

// ToggleQuestion godoc
// @Summary      Toggle active / draft
// @Tags         questions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Question ID"
// @Success      200  {object}  models.Question
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/questions/{id}/toggle [patch]
func (qc *QuestionController) ToggleQuestion(c *fiber.Ctx) error {
	q, err := qc.svc.ToggleActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(q)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Security     BearerAuth
// @Param        id  path  string  true  "Question ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/questions/{id} [delete]
func (qc *QuestionController) DeleteQuestion(c *fiber.Ctx) error {
	if err := qc.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Question deleted successfully"})
}

// PreviewQuestions godoc
// @Summary      Preview the form a class would see
// @Tags         questions
// @Security     BearerAuth
// @Produce      json
// @Param        className  query  string  true  "Class name"
// @Success      200  {array}  models.Question
// @Router       /admin/questions/preview [get]
func (qc *QuestionController) PreviewQuestions(c *fiber.Ctx) error {
	className := c.Query("className")
	if className == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "className is required")
	}
	list, err := qc.svc.Preview(c.UserContext(), className)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// SuggestQuestions godoc
// @Summary      Ask AI for three questions and store them as drafts
// @Tags         questions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  models.SuggestRequest  true  "Topic"
// @Success      201  {array}   models.Question
// @Failure      502  {object}  models.ErrorResponse
// @Router       /admin/questions/suggest [post]
func (qc *QuestionController) SuggestQuestions(c *fiber.Ctx) error {
	var req models.SuggestRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	suggestions, err := qc.ai.SuggestQuestions(c.UserContext(), req.Topic)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	drafts, err := qc.svc.CreateDrafts(c.UserContext(), suggestions)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(drafts)
}
