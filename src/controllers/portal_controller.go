package controllers

import (
	"context"
	"time"

	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/realtime"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
)

type Submitter interface {
	Submit(ctx context.Context, req models.SubmitRequest) (*models.Submission, error)
}

type FormBuilder interface {
	Form(ctx context.Context, className string) (*models.PortalForm, error)
}

// PortalController public endpoints used by respondents.
type PortalController struct {
	forms     FormBuilder
	intake    Submitter
	hub       *realtime.Hub
	heartbeat time.Duration
}

func NewPortalController(forms FormBuilder, intake Submitter, hub *realtime.Hub, heartbeat time.Duration) *PortalController {
	return &PortalController{forms: forms, intake: intake, hub: hub, heartbeat: heartbeat}
}

// GetConfig godoc
// @Summary      Get portal configuration
// @Tags         portal
// @Produce      json
// @Success      200  {object}  models.EventConfig
// @Failure      503  {object}  models.ErrorResponse
// @Router       /portal/config [get]
func (pc *PortalController) GetConfig(c *fiber.Ctx) error {
	form, err := pc.forms.Form(c.UserContext(), "")
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(form.Config)
}

// GetClasses godoc
// @Summary      List class names for the class picker
// @Tags         portal
// @Produce      json
// @Success      200  {array}   string
// @Failure      503  {object}  models.ErrorResponse
// @Router       /portal/classes [get]
func (pc *PortalController) GetClasses(c *fiber.Ctx) error {
	form, err := pc.forms.Form(c.UserContext(), "")
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(form.Classes)
}

// GetForm godoc
// @Summary      Get the questions for a class
// @Description  Returns config, classes and the active questions targeted at className. Closed portal returns no questions.
// @Tags         portal
// @Produce      json
// @Param        className  query  string  false  "Class name"
// @Success      200  {object}  models.PortalForm
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /portal/form [get]
func (pc *PortalController) GetForm(c *fiber.Ctx) error {
	form, err := pc.forms.Form(c.UserContext(), c.Query("className"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(form)
}

// Submit godoc
// @Summary      Submit answers
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        body  body  models.SubmitRequest  true  "Answers"
// @Success      201  {object}  models.Submission
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /portal/submissions [post]
func (pc *PortalController) Submit(c *fiber.Ctx) error {
	var req models.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	sub, err := pc.intake.Submit(c.UserContext(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// Live godoc
// @Summary      Stream portal snapshots (SSE)
// @Tags         portal
// @Produce      text/event-stream
// @Param        className  query  string  false  "Class name"
// @Success      200
// @Router       /portal/live [get]
func (pc *PortalController) Live(c *fiber.Ctx) error {
	if pc.hub == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "live updates unavailable")
	}
	className := c.Query("className")
	// เช็คก่อนเปิด stream ว่า class ถูกต้อง
	if _, err := pc.forms.Form(c.UserContext(), className); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return realtime.Stream(c, pc.hub, func(ctx context.Context) (interface{}, error) {
		return pc.forms.Form(ctx, className)
	}, pc.heartbeat)
}
