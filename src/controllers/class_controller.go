package controllers

import (
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/qrcode"
	"Backend-TanyaPintar/src/services/classes"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/logger"
)

type ClassController struct {
	svc       *classes.Service
	portalURL string
}

func NewClassController(svc *classes.Service, portalURL string) *ClassController {
	return &ClassController{svc: svc, portalURL: portalURL}
}

// CreateClass godoc
// @Summary      Register a class
// @Description  Name is trimmed and upper-cased
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  models.CreateClassRequest  true  "Class"
// @Success      201  {object}  models.Class
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /admin/classes [post]
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	var req models.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if msg := utils.ValidateStruct(req); msg != "" {
		return utils.HandleError(c, fiber.StatusBadRequest, msg)
	}

	class, err := cc.svc.Create(c.UserContext(), req.Name)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

// ListClasses godoc
// @Summary      List classes in creation order
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Class
// @Router       /admin/classes [get]
func (cc *ClassController) ListClasses(c *fiber.Ctx) error {
	list, err := cc.svc.List(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// DeleteClass godoc
// @Summary      Delete a class
// @Tags         classes
// @Security     BearerAuth
// @Param        id  path  string  true  "Class ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/classes/{id} [delete]
func (cc *ClassController) DeleteClass(c *fiber.Ctx) error {
	if err := cc.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}

// ClassQRCode godoc
// @Summary      QR code (PNG) of the portal link with the class preselected
// @Tags         classes
// @Security     BearerAuth
// @Produce      png
// @Param        id    path   string  true   "Class ID"
// @Param        size  query  int     false  "Image size in px"
// @Success      200  {file}  file
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/classes/{id}/qrcode [get]
func (cc *ClassController) ClassQRCode(c *fiber.Ctx) error {
	class, err := cc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	png, err := qrcode.GeneratePortalQRCode(cc.portalURL, class.Name, c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		logger.Errorf("❌ QR code for %s: %v", class.Name, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to generate QR code")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
