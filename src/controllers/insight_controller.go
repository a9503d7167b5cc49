package controllers

import (
	"Backend-TanyaPintar/src/services/insights"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
)

type InsightController struct {
	svc *insights.Service
}

func NewInsightController(svc *insights.Service) *InsightController {
	return &InsightController{svc: svc}
}

// StartInsight godoc
// @Summary      Start an AI analysis of all submissions
// @Tags         insights
// @Security     BearerAuth
// @Produce      json
// @Success      202  {object}  models.Insight
// @Router       /admin/insights [post]
func (ic *InsightController) StartInsight(c *fiber.Ctx) error {
	in, err := ic.svc.Start(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(in)
}

// ListInsights godoc
// @Summary      Recent analyses, newest first
// @Tags         insights
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query  int  false  "Max items"
// @Success      200  {array}  models.Insight
// @Router       /admin/insights [get]
func (ic *InsightController) ListInsights(c *fiber.Ctx) error {
	list, err := ic.svc.List(c.UserContext(), int64(c.QueryInt("limit", 20)))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetInsight godoc
// @Summary      Get one analysis
// @Tags         insights
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Insight ID"
// @Success      200  {object}  models.Insight
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/insights/{id} [get]
func (ic *InsightController) GetInsight(c *fiber.Ctx) error {
	in, err := ic.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(in)
}
