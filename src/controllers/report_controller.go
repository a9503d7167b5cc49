package controllers

import (
	"context"
	"time"

	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/realtime"
	"Backend-TanyaPintar/src/services/reports"
	"Backend-TanyaPintar/src/services/settings"
	"Backend-TanyaPintar/src/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	reports   *reports.Service
	settings  *settings.Service
	hub       *realtime.Hub
	heartbeat time.Duration
}

func NewReportController(r *reports.Service, s *settings.Service, hub *realtime.Hub, heartbeat time.Duration) *ReportController {
	return &ReportController{reports: r, settings: s, hub: hub, heartbeat: heartbeat}
}

// GetReport godoc
// @Summary      Dashboard statistics
// @Description  Participation by class, rating averages, class leaderboard and summary numbers
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.Report
// @Failure      503  {object}  models.ErrorResponse
// @Router       /admin/reports [get]
func (rc *ReportController) GetReport(c *fiber.Ctx) error {
	report, err := rc.reports.Build(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(report)
}

// snapshot builds what the dashboard stream sends.
func (rc *ReportController) snapshot(ctx context.Context) (interface{}, error) {
	cfg, err := rc.settings.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := rc.reports.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return models.DashboardSnapshot{
		Config:    *cfg,
		Classes:   snap.Classes,
		Questions: snap.Questions,
		Report:    reports.Aggregate(snap.Classes, snap.Questions, snap.Submissions, now),
		At:        now,
	}, nil
}

// Live godoc
// @Summary      Stream dashboard snapshots (SSE)
// @Tags         reports
// @Security     BearerAuth
// @Produce      text/event-stream
// @Success      200
// @Router       /admin/live [get]
func (rc *ReportController) Live(c *fiber.Ctx) error {
	if rc.hub == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "live updates unavailable")
	}
	return realtime.Stream(c, rc.hub, rc.snapshot, rc.heartbeat)
}
