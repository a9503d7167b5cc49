package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

var errNoQueue = errors.New("asynq client is not initialized")

// Queue schedules background work. With an asynq client tasks go to Redis;
// without one, EnqueueAnalyze fails so the caller runs inline and the portal
// close falls back to an in-process timer.
type Queue struct {
	client   *asynq.Client
	redisURI string
	closer   PortalCloser

	mu    sync.Mutex
	timer *time.Timer
}

func NewQueue(client *asynq.Client, redisURI string) *Queue {
	return &Queue{client: client, redisURI: redisURI}
}

// SetCloser sets what the in-process fallback timer calls.
func (q *Queue) SetCloser(c PortalCloser) {
	q.closer = c
}

func (q *Queue) EnqueueAnalyze(insightID string) error {
	if q.client == nil {
		return errNoQueue
	}
	task, err := NewAnalyzeInsightsTask(insightID)
	if err != nil {
		return err
	}
	_, err = q.client.Enqueue(task, asynq.TaskID(AnalyzeTaskID(insightID)), asynq.MaxRetry(2), asynq.Timeout(5*time.Minute))
	return err
}

// ScheduleClose replaces any pending close with one at runAt.
func (q *Queue) ScheduleClose(runAt time.Time) error {
	if q.client == nil {
		q.scheduleLocal(runAt)
		return nil
	}
	DeleteTask(q.redisURI, ClosePortalTaskID)
	_, err := q.client.Enqueue(NewClosePortalTask(), asynq.ProcessAt(runAt), asynq.TaskID(ClosePortalTaskID))
	if err != nil {
		logger.Errorf("❌ Failed to enqueue task %s: %v", ClosePortalTaskID, err)
		return err
	}
	logger.Infof("✅ Task scheduled: %s | RunAt=%s", ClosePortalTaskID, runAt.Format(time.RFC3339))
	return nil
}

// CancelClose drops the pending automatic close, if any.
func (q *Queue) CancelClose() error {
	if q.client == nil {
		q.mu.Lock()
		if q.timer != nil {
			q.timer.Stop()
			q.timer = nil
		}
		q.mu.Unlock()
		return nil
	}
	DeleteTask(q.redisURI, ClosePortalTaskID)
	return nil
}

func (q *Queue) scheduleLocal(runAt time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(time.Until(runAt), func() {
		if q.closer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := q.closer.CloseScheduled(ctx); err != nil {
			logger.Errorf("❌ In-process portal close failed: %v", err)
			return
		}
		logger.Infof("✅ Portal auto-closed (in-process timer)")
	})
	logger.Infof("⏰ Portal close scheduled in-process at %s", runAt.Format(time.RFC3339))
}

// DeleteTask ลบ task เดิมก่อน (ถ้ามี)
func DeleteTask(redisURI, taskID string) {
	if redisURI == "" {
		return
	}
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: redisURI})
	defer inspector.Close()
	err := inspector.DeleteTask("default", taskID)
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		logger.Warningf("⚠️ Failed to delete old task %s, then skipping: %v", taskID, err)
	} else if err == nil {
		logger.Infof("🗑️ Deleted previous task: %s", taskID)
	}
}
