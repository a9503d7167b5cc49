package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/logger"
)

// BuildFunc produces a fresh immutable snapshot.
type BuildFunc func(ctx context.Context) (interface{}, error)

// Event one server-sent event.
type Event struct {
	Name string
	Data interface{}
}

// WriteEvent writes ev in text/event-stream framing.
func WriteEvent(w *bufio.Writer, ev Event) error {
	b, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	if ev.Name != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", ev.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
		return err
	}
	return w.Flush()
}

// Watch calls build once, after every notification and on every heartbeat,
// sending each snapshot to emit. When a rebuild fails the client is told its
// last snapshot is stale instead. It returns when ctx is done, the hub
// subscription ends or emit fails.
func Watch(ctx context.Context, hub *Hub, build BuildFunc, heartbeat time.Duration, emit func(Event) error) {
	events, cancel := hub.Subscribe()
	defer cancel()

	refresh := func(reason string) error {
		snap, err := build(ctx)
		if err != nil {
			logger.Warningf("⚠️ [realtime] snapshot rebuild after %s failed, client keeps last: %v", reason, err)
			return emit(Event{Name: "stale", Data: fiber.Map{"reason": reason, "at": time.Now()}})
		}
		return emit(Event{Name: "snapshot", Data: snap})
	}

	if err := refresh("connect"); err != nil {
		return
	}

	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		var reason string
		select {
		case <-ctx.Done():
			return
		case topic, ok := <-events:
			if !ok {
				return
			}
			reason = topic
		case <-ticker.C:
			reason = "heartbeat"
		}
		if err := refresh(reason); err != nil {
			return
		}
	}
}

// Stream turns the fiber response into an SSE stream fed by Watch.
func Stream(c *fiber.Ctx, hub *Hub, build BuildFunc, heartbeat time.Duration) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		Watch(ctx, hub, build, heartbeat, func(ev Event) error {
			// a failed flush means the client went away
			return WriteEvent(w, ev)
		})
	})
	return nil
}
