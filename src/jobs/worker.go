package jobs

import (
	"context"
	"encoding/json"

	"github.com/google/logger"
	"github.com/hibiken/asynq"
)

type InsightRunner interface {
	Run(ctx context.Context, insightID string) error
}

type PortalCloser interface {
	CloseScheduled(ctx context.Context) error
}

func HandleAnalyzeInsightsTask(runner InsightRunner) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AnalyzePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Errorf("❌ Payload decode error: %v", err)
			// payload เสีย retry ไปก็ไม่หาย
			return asynq.SkipRetry
		}
		logger.Infof("🎯 Start analysis %s", payload.InsightID)
		return runner.Run(ctx, payload.InsightID)
	}
}

func HandleClosePortalTask(closer PortalCloser) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if err := closer.CloseScheduled(ctx); err != nil {
			logger.Errorf("❌ Failed to close portal: %v", err)
			return err
		}
		logger.Infof("✅ Portal auto-closed at closeAt")
		return nil
	}
}

// RegisterHandlers ผูก handler กับ type ที่ใช้ใน task
func RegisterHandlers(mux *asynq.ServeMux, runner InsightRunner, closer PortalCloser) {
	mux.HandleFunc(TypeAnalyzeInsights, HandleAnalyzeInsightsTask(runner))
	mux.HandleFunc(TypeClosePortal, HandleClosePortalTask(closer))
}

// StartWorker starts an asynq server in the background; call Shutdown on
// exit. Returns nil when Redis is not configured.
func StartWorker(redisURI string, runner InsightRunner, closer PortalCloser) *asynq.Server {
	if redisURI == "" {
		logger.Warning("⚠️ Redis not available. Background jobs run in-process.")
		return nil
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisURI}, asynq.Config{
		Concurrency: 2,
		Logger:      asynqLogger{},
	})
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, runner, closer)

	if err := srv.Start(mux); err != nil {
		logger.Errorf("❌ Asynq worker failed to start: %v", err)
		return nil
	}
	logger.Info("✅ Asynq worker started")
	return srv
}

// asynqLogger routes asynq's logs through google/logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) {}
func (asynqLogger) Info(args ...interface{})  { logger.Info(args...) }
func (asynqLogger) Warn(args ...interface{})  { logger.Warning(args...) }
func (asynqLogger) Error(args ...interface{}) { logger.Error(args...) }
func (asynqLogger) Fatal(args ...interface{}) { logger.Fatal(args...) }
