// Package settings holds the singleton event configuration that gates the
// portal.
package settings

import (
	"context"
	"strings"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/realtime"

	"github.com/google/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// CloseScheduler schedules the automatic portal close.
type CloseScheduler interface {
	ScheduleClose(at time.Time) error
	CancelClose() error
}

type Service struct {
	col       *mongo.Collection
	scheduler CloseScheduler
	notifier  realtime.Notifier
	now       func() time.Time
}

func NewService(col *mongo.Collection, scheduler CloseScheduler, notifier realtime.Notifier) *Service {
	if notifier == nil {
		notifier = realtime.Nop{}
	}
	return &Service{col: col, scheduler: scheduler, notifier: notifier, now: time.Now}
}

// GetConfig returns the stored config or the defaults when none was saved.
func (s *Service) GetConfig(ctx context.Context) (*models.EventConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var cfg models.EventConfig
	err := s.col.FindOne(ctx, bson.M{"_id": models.EventConfigID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		def := models.DefaultEventConfig()
		return &def, nil
	}
	if err != nil {
		return nil, errs.Store(err, "load event config")
	}
	return &cfg, nil
}

// FromRequest builds the document saved by UpdateConfig. Blank optional
// fields fall back to the defaults.
func FromRequest(req models.EventConfigRequest, now time.Time) models.EventConfig {
	def := models.DefaultEventConfig()
	cfg := models.EventConfig{
		ID:         models.EventConfigID,
		Title:      strings.TrimSpace(req.Title),
		Desc:       strings.TrimSpace(req.Desc),
		IsOpen:     req.IsOpen,
		BrandColor: strings.TrimSpace(req.BrandColor),
		LogoURL:    req.LogoURL,
		CloseAt:    req.CloseAt,
		UpdatedAt:  now,
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.BrandColor == "" {
		cfg.BrandColor = def.BrandColor
	}
	if cfg.LogoURL != nil && strings.TrimSpace(*cfg.LogoURL) == "" {
		cfg.LogoURL = nil
	}
	// closeAt ที่ผ่านไปแล้วไม่มีผล
	if cfg.CloseAt != nil && !cfg.CloseAt.After(now) {
		cfg.CloseAt = nil
	}
	return cfg
}

// UpdateConfig replaces the whole document; concurrent saves are last write
// wins. A future closeAt (re)schedules the automatic close, no closeAt
// cancels it.
func (s *Service) UpdateConfig(ctx context.Context, req models.EventConfigRequest) (*models.EventConfig, error) {
	cfg := FromRequest(req, s.now())

	octx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := s.col.ReplaceOne(octx, bson.M{"_id": models.EventConfigID}, cfg, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, errs.Store(err, "save event config")
	}

	s.syncSchedule(cfg.CloseAt)
	logger.Infof("[settings] ✅ config saved open=%v", cfg.IsOpen)
	s.notifier.Publish(ctx, realtime.TopicConfig)
	return &cfg, nil
}

// SetOpen flips only the gate flag. Closing also cancels a pending automatic
// close.
func (s *Service) SetOpen(ctx context.Context, open bool) (*models.EventConfig, error) {
	return s.setOpen(ctx, open, true)
}

// CloseScheduled closes the portal when the scheduled closeAt fires.
func (s *Service) CloseScheduled(ctx context.Context) error {
	_, err := s.setOpen(ctx, false, false)
	return err
}

func (s *Service) setOpen(ctx context.Context, open, syncSchedule bool) (*models.EventConfig, error) {
	def := models.DefaultEventConfig()
	update := bson.M{
		"$set": bson.M{"isOpen": open, "updatedAt": s.now()},
		"$setOnInsert": bson.M{
			"title":      def.Title,
			"desc":       def.Desc,
			"brandColor": def.BrandColor,
		},
	}
	if !open {
		// ปิดเองแล้ว ไม่ต้องรอ closeAt
		update["$unset"] = bson.M{"closeAt": ""}
	}

	octx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var cfg models.EventConfig
	err := s.col.FindOneAndUpdate(octx, bson.M{"_id": models.EventConfigID}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(&cfg)
	if err != nil {
		return nil, errs.Store(err, "toggle portal")
	}

	if !open && syncSchedule {
		s.syncSchedule(nil)
	}
	logger.Infof("[settings] 🚪 portal open=%v", open)
	s.notifier.Publish(ctx, realtime.TopicConfig)
	return &cfg, nil
}

func (s *Service) syncSchedule(closeAt *time.Time) {
	if s.scheduler == nil {
		return
	}
	var err error
	if closeAt != nil {
		err = s.scheduler.ScheduleClose(*closeAt)
	} else {
		err = s.scheduler.CancelClose()
	}
	if err != nil {
		logger.Warningf("⚠️ [settings] portal close schedule not updated: %v", err)
	}
}
