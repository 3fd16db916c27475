package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workflowEvent(eventType string, entityID int64) *WorkflowCompleted {
	return &WorkflowCompleted{
		BaseEvent: NewBaseEvent(eventType, EntityEpisode, entityID),
		Kind:      "episode",
		Service:   "sonarr",
		Status:    "queued",
	}
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return nil
	}
}

func TestBus_SubscribeByType(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	configs := bus.Subscribe(EventConfigChanged, 10)
	workflows := bus.Subscribe(EventWorkflowQueued, 10)

	require.NoError(t, bus.Publish(context.Background(), NewConfigChanged(2, []string{"plex"})))

	got := receive(t, configs)
	changed, ok := got.(*ConfigChanged)
	require.True(t, ok)
	assert.Equal(t, int64(2), changed.Revision)
	assert.Equal(t, []string{"plex"}, changed.Services)

	select {
	case e := <-workflows:
		t.Fatalf("workflow subscriber got %s", e.EventType())
	default:
	}
}

func TestBus_SubscribeAllSeesEveryType(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewConfigChanged(3, nil)))
	require.NoError(t, bus.Publish(ctx, workflowEvent(EventWorkflowFailed, 77)))

	assert.Equal(t, EventConfigChanged, receive(t, ch).EventType())
	second := receive(t, ch)
	assert.Equal(t, EventWorkflowFailed, second.EventType())
	assert.Equal(t, int64(77), second.EntityID())
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventConfigChanged, 1)
	bus.Unsubscribe(ch)
	require.NoError(t, bus.Publish(context.Background(), NewConfigChanged(4, nil)))

	_, ok := <-ch
	assert.False(t, ok)
}

func TestBus_FullSubscriberMissesEvent(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventConfigChanged, 1)
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewConfigChanged(5, nil)))
	require.NoError(t, bus.Publish(ctx, NewConfigChanged(6, nil)))

	assert.Equal(t, int64(5), receive(t, ch).EntityID())
	select {
	case e := <-ch:
		t.Fatalf("expected the second event to be dropped, got revision %d", e.EntityID())
	default:
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.SubscribeAll(100)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = bus.Publish(context.Background(), workflowEvent(EventWorkflowQueued, id))
		}(int64(i))
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for len(seen) < 10 {
		seen[receive(t, ch).EntityID()] = true
	}
	assert.Len(t, seen, 10)
}

func TestBus_PersistsPublishedEvents(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	require.NoError(t, bus.Publish(context.Background(), NewConfigChanged(7, []string{"sonarr"})))

	events, err := log.List(context.Background(), Filter{EntityType: EntityConfig})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventConfigChanged, events[0].EventType)
	assert.Equal(t, int64(7), events[0].EntityID)
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil, nil)
	ch := bus.Subscribe(EventConfigChanged, 1)
	require.NoError(t, bus.Close())

	_, ok := <-ch
	assert.False(t, ok)
	assert.NoError(t, bus.Publish(context.Background(), NewConfigChanged(1, nil)))

	late := bus.SubscribeAll(1)
	_, ok = <-late
	assert.False(t, ok, "subscribing to a closed bus yields a closed channel")
}
