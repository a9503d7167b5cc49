// Package realtime fans change notifications out to live views. With Redis the
// notifications travel over Pub/Sub so every instance sees every change;
// without it they stay in-process.
package realtime

import (
	"context"
	"sync"

	"github.com/google/logger"
	"github.com/redis/go-redis/v9"
)

// Channel Redis Pub/Sub channel carrying change topics.
const Channel = "tanyapintar:changes"

// Change topics.
const (
	TopicClasses     = "classes"
	TopicQuestions   = "questions"
	TopicSubmissions = "submissions"
	TopicConfig      = "config"
	TopicInsights    = "insights"
)

const subscriberBuffer = 8

// Notifier is implemented by Hub; services depend on this instead of the hub.
type Notifier interface {
	Publish(ctx context.Context, topic string)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Publish(context.Context, string) {}

type Hub struct {
	rdb *redis.Client

	mu   sync.RWMutex
	subs map[int]chan string
	next int
}

// NewHub creates a hub; rdb may be nil.
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb, subs: make(map[int]chan string)}
}

// Publish announces a change on topic. Redis failures fall back to the local
// subscribers so this instance's views still refresh.
func (h *Hub) Publish(ctx context.Context, topic string) {
	if h.rdb != nil {
		err := h.rdb.Publish(ctx, Channel, topic).Err()
		if err == nil {
			return
		}
		logger.Warningf("⚠️ [realtime] publish %s via redis failed, delivering locally: %v", topic, err)
	}
	h.broadcast(topic)
}

// Run relays Redis messages to local subscribers until ctx is done. Without
// Redis it returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	ps := h.rdb.Subscribe(ctx, Channel)
	defer ps.Close()
	logger.Infof("✅ [realtime] subscribed to %s", Channel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(msg.Payload)
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called.
func (h *Hub) Subscribe() (<-chan string, func()) {
	ch := make(chan string, subscriberBuffer)
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers number of live listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// broadcast never blocks: a listener that is behind already has a pending
// notification and will rebuild its snapshot anyway.
func (h *Hub) broadcast(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- topic:
		default:
		}
	}
}
