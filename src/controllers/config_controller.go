package controllers

import (
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/settings"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
)

type ConfigController struct {
	svc *settings.Service
}

func NewConfigController(svc *settings.Service) *ConfigController {
	return &ConfigController{svc: svc}
}

// GetConfig godoc
// @Summary      Get event configuration
// @Tags         config
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.EventConfig
// @Router       /admin/config [get]
func (cc *ConfigController) GetConfig(c *fiber.Ctx) error {
	cfg, err := cc.svc.GetConfig(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(cfg)
}

// UpdateConfig godoc
// @Summary      Save event configuration
// @Description  Whole-document replace. A future closeAt schedules the portal to close automatically.
// @Tags         config
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  models.EventConfigRequest  true  "Config"
// @Success      200  {object}  models.EventConfig
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/config [put]
func (cc *ConfigController) UpdateConfig(c *fiber.Ctx) error {
	var req models.EventConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	cfg, err := cc.svc.UpdateConfig(c.UserContext(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(cfg)
}

// SetOpen godoc
// @Summary      Open or close the portal
// @Tags         config
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  models.SetOpenRequest  true  "Gate"
// @Success      200  {object}  models.EventConfig
// @Router       /admin/config/open [patch]
func (cc *ConfigController) SetOpen(c *fiber.Ctx) error {
	var req models.SetOpenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	cfg, err := cc.svc.SetOpen(c.UserContext(), *req.IsOpen)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(cfg)
}
