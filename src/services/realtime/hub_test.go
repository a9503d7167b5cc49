package realtime

import (
	"bufio"
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubLocalFanOut(t *testing.T) {
	hub := NewHub(nil)
	a, cancelA := hub.Subscribe()
	b, cancelB := hub.Subscribe()
	defer cancelB()
	assert.Equal(t, 2, hub.Subscribers())

	hub.Publish(context.Background(), TopicQuestions)
	assert.Equal(t, TopicQuestions, <-a)
	assert.Equal(t, TopicQuestions, <-b)

	cancelA()
	cancelA() // idempotent
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, hub.Subscribers())
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			hub.Publish(context.Background(), TopicSubmissions)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	n.Publish(context.Background(), TopicConfig)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) emit(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Name)
	}
	return out
}

func TestWatchRebuildsOnChange(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	calls := 0
	build := func(ctx context.Context) (interface{}, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			return nil, errors.New("store down")
		}
		return calls, nil
	}

	rec := &recorder{}
	finished := make(chan struct{})
	go func() {
		Watch(ctx, hub, build, time.Hour, rec.emit)
		close(finished)
	}()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 && len(rec.names()) == 1 }, time.Second, 5*time.Millisecond)
	hub.Publish(ctx, TopicSubmissions)
	require.Eventually(t, func() bool { return len(rec.names()) == 2 }, time.Second, 5*time.Millisecond)
	hub.Publish(ctx, TopicQuestions)
	require.Eventually(t, func() bool { return len(rec.names()) == 3 }, time.Second, 5*time.Millisecond)

	cancel()
	<-finished
	assert.Equal(t, []string{"snapshot", "stale", "snapshot"}, rec.names())
	assert.Equal(t, 3, rec.events[2].Data)
	assert.Equal(t, 0, hub.Subscribers())
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, WriteEvent(w, Event{Name: "snapshot", Data: map[string]int{"n": 1}}))
	assert.Equal(t, "event: snapshot\ndata: {\"n\":1}\n\n", buf.String())
}
